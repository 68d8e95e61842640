package render

import (
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// DetailTags renders the tag fragment for a detail page. Tag order is preserved
// from metadata; each tag is escaped independently.
func DetailTags(tags []string) string {
	var b strings.Builder
	for _, tag := range tags {
		b.WriteString(`<span class="tag"> | `)
		b.WriteString(templates.EscapeField(tag))
		b.WriteString(`</span>`)
	}
	return b.String()
}

// CardTags renders the tag fragment for a listing card.
func CardTags(tags []string) string {
	var b strings.Builder
	for _, tag := range tags {
		b.WriteString(`<span class="tag">`)
		b.WriteString(templates.EscapeField(tag))
		b.WriteString(`</span>`)
	}
	return b.String()
}

// AuthorFragment renders the optional author line.
func AuthorFragment(author string) string {
	if author == "" {
		return ""
	}
	return `<span class="author">by ` + templates.EscapeField(author) + `</span>`
}
