package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBasics(t *testing.T) {
	c := NewConverter()
	out, err := c.Convert([]byte("# Title\n\nSome **bold** text.\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestConvertHardWraps(t *testing.T) {
	c := NewConverter()
	out, err := c.Convert([]byte("line one\nline two\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<br>")
}

func TestConvertGFMTable(t *testing.T) {
	c := NewConverter()
	out, err := c.Convert([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestConvertFencedCode(t *testing.T) {
	c := NewConverter()
	out, err := c.Convert([]byte("```go\nfmt.Println(\"hi\")\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, out, `<pre><code class="language-go">`)
}

func TestConvertRawHTMLPassthrough(t *testing.T) {
	c := NewConverter()
	out, err := c.Convert([]byte("<div class=\"custom\">kept</div>\n"))
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="custom">kept</div>`)
}
