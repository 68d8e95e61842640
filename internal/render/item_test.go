package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailTestTemplate = `<html><body>{{ header }}
<h1>{{ title }}</h1>
<p>{{ description }}</p>
<span>{{ date }}</span>{{ tags }}{{ rating }}{{ author }}
<div>{{ content }}</div>
<footer>{{ currentYear }}</footer></body></html>`

func newTestRenderer(t *testing.T, ratings bool) *Renderer {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "detail.html"), []byte(detailTestTemplate), 0644))
	store := templates.NewStore(dir)
	return NewRenderer(store, NewDateFormatter("en-US"), "project", ratings)
}

func testItem() content.Item {
	return content.Item{
		ID: "my-item",
		Meta: content.Metadata{
			Title:       "Tools & Toys",
			Description: "A <fine> description",
			Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			RawDate:     "2024-05-01",
			Tags:        []string{"go"},
			Status:      "published",
			Rating:      content.Rating{Value: 8, Valid: true},
			Author:      "Sam",
		},
		Body: []byte("Hello **world**\n"),
	}
}

func TestURLFor(t *testing.T) {
	r := newTestRenderer(t, false)
	assert.Equal(t, "/project/my-item.html", r.URLFor("my-item"))
}

func TestRenderItem(t *testing.T) {
	r := newTestRenderer(t, true)
	published, page, err := r.RenderItem(testItem(), "<header/>", 2026)
	require.NoError(t, err)

	assert.Equal(t, "/project/my-item.html", published.URL)
	assert.Contains(t, published.HTML, "<strong>world</strong>")

	assert.Contains(t, page, "<header/>")
	assert.Contains(t, page, "Tools &amp; Toys")
	assert.Contains(t, page, "A &lt;fine&gt; description")
	assert.Contains(t, page, "5/1/2024")
	assert.Contains(t, page, `<span class="tag"> | go</span>`)
	assert.Contains(t, page, `<span class="rating stars-40">4.0</span>`)
	assert.Contains(t, page, `<span class="author">by Sam</span>`)
	assert.Contains(t, page, "<strong>world</strong>")
	assert.Contains(t, page, "<footer>2026</footer>")
}

func TestRenderItemRatingsDisabled(t *testing.T) {
	r := newTestRenderer(t, false)
	_, page, err := r.RenderItem(testItem(), "", 2026)
	require.NoError(t, err)
	assert.NotContains(t, page, "rating stars-")
}

func TestRenderItemMissingTemplate(t *testing.T) {
	store := templates.NewStore(t.TempDir())
	r := NewRenderer(store, NewDateFormatter("en-US"), "project", false)
	_, _, err := r.RenderItem(testItem(), "", 2026)
	require.Error(t, err)
}
