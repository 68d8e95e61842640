package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// copyrightYearPattern matches a hardcoded copyright year so templates that
// carry a literal "© 2025" keep current without a placeholder.
var copyrightYearPattern = regexp.MustCompile(`(©|&copy;)\s*20\d{2}`)

func stageAboutPage(_ context.Context, bs *BuildState) error {
	g := bs.Generator

	header, err := g.store.Header("about")
	if err != nil {
		return newFatalStageError(StageAboutPage, err)
	}

	year := strconv.Itoa(g.now().Year())
	page, err := g.store.Apply(templates.TemplateAbout, templates.Fields{
		"header":      header,
		"currentYear": year,
	})
	if err != nil {
		return newFatalStageError(StageAboutPage, err)
	}
	page = copyrightYearPattern.ReplaceAllString(page, "${1} "+year)

	outputPath := filepath.Join(g.outputDir, "about.html")
	if err := os.WriteFile(outputPath, []byte(page), 0644); err != nil {
		return newFatalStageError(StageAboutPage, fmt.Errorf("write %s: %w", outputPath, err))
	}
	bs.Report.RenderedPages++
	slog.Info("About page generated", logfields.Output(outputPath))
	return nil
}
