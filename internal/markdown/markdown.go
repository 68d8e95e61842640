// Package markdown wraps the Goldmark engine with the site's fixed dialect:
// GitHub-flavored tables/strikethrough/fenced code plus hard line breaks
// (soft breaks in source become <br> in output, matching authoring habits).
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders markdown bodies to HTML fragments.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter constructs a converter with the site dialect. Raw HTML in item
// bodies is passed through: bodies are author-owned, not untrusted input.
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithUnsafe(),
			),
		),
	}
}

// Convert renders a markdown body to an HTML fragment.
func (c *Converter) Convert(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
