// Package render converts one eligible content item into its detail-page
// document and carries the presentation helpers (dates, tags, rating buckets)
// shared with the listing composer.
package render

import (
	"fmt"
	"strconv"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// PublishedItem is an eligible item plus its computed URL and rendered body.
// It exists only to feed the listing composer.
type PublishedItem struct {
	content.Item
	URL  string
	HTML string
}

// Renderer turns items into detail-page documents.
type Renderer struct {
	conv     *markdown.Converter
	store    *templates.Store
	dates    *DateFormatter
	category string
	ratings  bool
}

// NewRenderer wires the renderer's collaborators. category is the detail-page
// directory segment; ratings toggles the rating fragment.
func NewRenderer(store *templates.Store, dates *DateFormatter, category string, ratings bool) *Renderer {
	return &Renderer{
		conv:     markdown.NewConverter(),
		store:    store,
		dates:    dates,
		category: category,
		ratings:  ratings,
	}
}

// URLFor computes the site-relative URL of an item's detail page.
func (r *Renderer) URLFor(id string) string {
	return "/" + r.category + "/" + id + ".html"
}

// RenderItem produces the detail-page document and the PublishedItem summary
// for one eligible item. Any failure is scoped to this item.
func (r *Renderer) RenderItem(item content.Item, header string, year int) (PublishedItem, string, error) {
	htmlBody, err := r.conv.Convert(item.Body)
	if err != nil {
		return PublishedItem{}, "", fmt.Errorf("render body for %s: %w", item.ID, err)
	}

	page, err := r.store.Apply(templates.TemplateDetail, templates.Fields{
		"title":       templates.EscapeField(item.Meta.Title),
		"description": templates.EscapeField(item.Meta.Description),
		"date":        r.dates.Format(item.Meta.Date),
		"tags":        DetailTags(item.Meta.Tags),
		"rating":      RatingFragment(item.Meta.Rating, r.ratings),
		"author":      AuthorFragment(item.Meta.Author),
		"content":     htmlBody,
		"header":      header,
		"currentYear": strconv.Itoa(year),
	})
	if err != nil {
		return PublishedItem{}, "", fmt.Errorf("apply detail template for %s: %w", item.ID, err)
	}

	published := PublishedItem{
		Item: item,
		URL:  r.URLFor(item.ID),
		HTML: htmlBody,
	}
	return published, page, nil
}

// Dates exposes the renderer's date formatter for the listing composer.
func (r *Renderer) Dates() *DateFormatter { return r.dates }

// RatingsEnabled reports whether the rating fragment is active for this site.
func (r *Renderer) RatingsEnabled() bool { return r.ratings }
