package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"golang.org/x/net/html"
)

// stageVerifyOutput parses the emitted listing page and cross-checks the card
// count against what the composer reported. A mismatch means a template ate or
// duplicated cards; it is surfaced as a warning, never a build failure.
func stageVerifyOutput(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	path := filepath.Join(g.outputDir, "index.html")

	f, err := os.Open(path)
	if err != nil {
		return newWarnStageError(StageVerifyOutput, fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return newWarnStageError(StageVerifyOutput, fmt.Errorf("parse %s: %w", path, err))
	}

	got := countCards(doc)
	if got != bs.ListingCards {
		msg := fmt.Sprintf("listing page has %d card(s), composer emitted %d", got, bs.ListingCards)
		bs.Report.AddIssue(IssueVerifyMismatch, StageVerifyOutput, SeverityWarning, "", msg)
		return newWarnStageError(StageVerifyOutput, fmt.Errorf("%s", msg))
	}
	slog.Debug("Listing page verified", logfields.Count(got))
	return nil
}

// countCards walks the parsed document counting project-card elements.
func countCards(doc *html.Node) int {
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "class" && hasClass(attr.Val, "project-card") {
					count++
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return count
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}
