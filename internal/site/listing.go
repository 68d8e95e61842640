package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// sortingControlsHTML is the toggle emitted when interactive re-sort is enabled.
const sortingControlsHTML = `<div class="sorting-controls">
  <button id="sortToggleBtn" class="sort-btn" data-sort="newest">Newest <span class="sort-arrow">&#8595;</span></button>
</div>`

// sortingScriptHTML re-sorts the cards client-side from their data-date
// attributes, re-applying the visible-count threshold (%d) after each toggle.
const sortingScriptHTML = `<script>
document.addEventListener('DOMContentLoaded', function () {
  var visibleCount = %d;
  var sortToggleBtn = document.getElementById('sortToggleBtn');
  var grid = document.querySelector('.projects-grid');
  var cards = Array.prototype.slice.call(document.querySelectorAll('.project-card'));
  if (!sortToggleBtn || !grid) return;

  function sortCards(sortBy) {
    var sorted = cards.slice().sort(function (a, b) {
      var aDate = new Date(a.dataset.date);
      var bDate = new Date(b.dataset.date);
      return sortBy === 'newest' ? bDate - aDate : aDate - bDate;
    });
    sorted.forEach(function (card, index) {
      grid.appendChild(card);
      card.classList.toggle('hidden', index >= visibleCount);
    });
    sortToggleBtn.innerHTML = sortBy === 'newest'
      ? 'Newest <span class="sort-arrow">&#8595;</span>'
      : 'Oldest <span class="sort-arrow">&#8593;</span>';
    sortToggleBtn.dataset.sort = sortBy;
    var showMoreBtn = document.getElementById('showMoreBtn');
    if (showMoreBtn) showMoreBtn.style.display = '';
  }

  sortToggleBtn.addEventListener('click', function () {
    sortCards(this.dataset.sort === 'newest' ? 'oldest' : 'newest');
  });

  var showMoreBtn = document.getElementById('showMoreBtn');
  if (showMoreBtn) {
    showMoreBtn.addEventListener('click', function () {
      document.querySelectorAll('.project-card.hidden').forEach(function (card) {
        card.classList.remove('hidden');
      });
      showMoreBtn.style.display = 'none';
    });
  }
});
</script>`

const showMoreHTML = `<div class="show-more-container">
  <a id="showMoreBtn" class="btn">Show More</a>
</div>`

const emptyCardHTML = `<div class="project-card">
  <h3>Empty</h3>
  <p>No posts yet. Check back soon.</p>
</div>`

// sortPublished orders items newest-first. The sort is stable, and discovery
// order is directory-name order, so equal dates tie-break deterministically by id.
func sortPublished(items []render.PublishedItem) []render.PublishedItem {
	sorted := make([]render.PublishedItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Meta.Date.After(sorted[j].Meta.Date)
	})
	return sorted
}

// composeCard renders one summary card at the given sorted index.
func (g *Generator) composeCard(p render.PublishedItem, index int) string {
	hidden := ""
	if index >= g.cfg.Site.VisibleCount {
		hidden = " hidden"
	}

	attrs := fmt.Sprintf(` data-index="%d"`, index)
	if g.cfg.Site.Resort {
		attrs += ` data-date="` + templates.EscapeField(p.Meta.RawDate) + `"`
		if g.cfg.Site.Ratings {
			raw := "0"
			if p.Meta.Rating.Valid {
				raw = strconv.FormatFloat(p.Meta.Rating.Value, 'f', -1, 64)
			}
			attrs += ` data-rating="` + raw + `"`
		}
	}

	title := templates.EscapeField(p.Meta.Title)
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="project-card%s"%s>`+"\n", hidden, attrs)
	fmt.Fprintf(&b, `  <a href="%s" class="project-card-link" aria-label="View %s"></a>`+"\n", p.URL, title)
	fmt.Fprintf(&b, "  <h3>%s</h3>\n", title)
	fmt.Fprintf(&b, "  <p>%s</p>\n", templates.EscapeField(p.Meta.Description))
	b.WriteString("  <div class=\"project-footer\">\n")
	fmt.Fprintf(&b, `    <div class="project-tags">%s</div>`+"\n", render.CardTags(p.Meta.Tags))
	b.WriteString("    <div class=\"card-meta\">\n")
	if rating := render.RatingFragment(p.Meta.Rating, g.cfg.Site.Ratings); rating != "" {
		b.WriteString("      " + rating + "\n")
	}
	fmt.Fprintf(&b, `      <div class="date-display">%s</div>`+"\n", g.renderer.Dates().Format(p.Meta.Date))
	b.WriteString("    </div>\n  </div>\n</div>")
	return b.String()
}

// composeListing builds the listing page document from the published set and
// returns it with the number of cards emitted.
func (g *Generator) composeListing(published []render.PublishedItem, header string) (string, int, error) {
	sorted := sortPublished(published)

	var cards []string
	showMore := ""
	if len(sorted) == 0 {
		cards = append(cards, emptyCardHTML)
	} else {
		for i, p := range sorted {
			cards = append(cards, g.composeCard(p, i))
		}
		if len(sorted) > g.cfg.Site.VisibleCount {
			showMore = showMoreHTML
		}
	}

	sortingControls, sortingScript := "", ""
	if g.cfg.Site.Resort && len(sorted) > 0 {
		sortingControls = sortingControlsHTML
		sortingScript = fmt.Sprintf(sortingScriptHTML, g.cfg.Site.VisibleCount)
	}

	page, err := g.store.Apply(templates.TemplateIndex, templates.Fields{
		"title":           templates.EscapeField(g.cfg.Site.Title),
		"header":          header,
		"cards":           strings.Join(cards, "\n"),
		"showMoreBtn":     showMore,
		"sortingControls": sortingControls,
		"sortingScript":   sortingScript,
		"currentYear":     strconv.Itoa(g.now().Year()),
	})
	if err != nil {
		return "", 0, err
	}
	return page, len(cards), nil
}

func stageComposeListing(_ context.Context, bs *BuildState) error {
	g := bs.Generator

	header, err := g.store.Header("home")
	if err != nil {
		return newFatalStageError(StageComposeListing, err)
	}
	page, cardCount, err := g.composeListing(bs.Published, header)
	if err != nil {
		return newFatalStageError(StageComposeListing, err)
	}

	outputPath := filepath.Join(g.outputDir, "index.html")
	if err := os.WriteFile(outputPath, []byte(page), 0644); err != nil {
		return newFatalStageError(StageComposeListing, fmt.Errorf("write %s: %w", outputPath, err))
	}
	bs.ListingCards = cardCount
	bs.Report.RenderedPages++
	slog.Info("Listing page generated", logfields.Output(outputPath), logfields.Count(cardCount))
	return nil
}
