// Package site orchestrates one full build run: content discovery, publication
// filtering, detail-page rendering, listing composition, about-page generation,
// stale-output synchronization, and static asset copying.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	berrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
	"github.com/google/uuid"
)

// Generator runs the site build pipeline.
type Generator struct {
	cfg       *config.Config
	outputDir string
	store     *templates.Store
	renderer  *render.Renderer
	recorder  metrics.Recorder
	// now is injectable so tests can pin the current year and get
	// byte-identical output across runs.
	now func() time.Time
}

// NewGenerator creates a generator for the given configuration. outputDir
// overrides cfg.Paths.Output when non-empty.
func NewGenerator(cfg *config.Config, outputDir string) *Generator {
	if outputDir == "" {
		outputDir = cfg.Paths.Output
	}
	store := templates.NewStore(cfg.Paths.Templates)
	dates := render.NewDateFormatter(cfg.Site.Locale)
	return &Generator{
		cfg:       cfg,
		outputDir: filepath.Clean(outputDir),
		store:     store,
		renderer:  render.NewRenderer(store, dates, cfg.Site.Category, cfg.Site.Ratings),
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
	}
}

// SetRecorder injects a metrics recorder (optional). Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		g.recorder = metrics.NoopRecorder{}
		return g
	}
	g.recorder = r
	return g
}

// SetNow injects the clock (tests). Returns the generator for chaining.
func (g *Generator) SetNow(now func() time.Time) *Generator {
	if now != nil {
		g.now = now
	}
	return g
}

// detailDir is the only directory the synchronizer may delete from.
func (g *Generator) detailDir() string {
	return filepath.Join(g.outputDir, g.cfg.Site.Category)
}

// Build performs one full pipeline run and returns its report. The returned
// error is run-level only; per-item failures are recorded in the report and
// leave the error nil.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	buildID := uuid.NewString()
	slog.Info("Starting site build",
		logfields.BuildID(buildID),
		logfields.Output(g.outputDir),
		slog.String("category", g.cfg.Site.Category))

	report := newBuildReport(buildID)
	bs := newBuildState(g, report)

	stages := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageLoadContent, stageLoadContent).
		Add(StageRenderItems, stageRenderItems).
		Add(StageComposeListing, stageComposeListing).
		Add(StageAboutPage, stageAboutPage).
		Add(StageSyncOutputs, stageSyncOutputs).
		Add(StageCopyAssets, stageCopyAssets).
		Add(StageVerifyOutput, stageVerifyOutput).
		Build()

	err := runStages(ctx, bs, stages)
	report.deriveOutcome()
	report.finish()

	if perr := report.Persist(g.outputDir); perr != nil {
		slog.Warn("Failed to persist build report", logfields.Error(perr))
	}

	g.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	g.recorder.IncBuildOutcome(string(report.Outcome))

	if err != nil {
		return report, err
	}
	slog.Info("Site build completed",
		logfields.BuildID(buildID),
		slog.Int("published", report.ItemsPublished),
		slog.Int("failed", report.ItemsFailed),
		slog.Int("stale_removed", report.StaleRemoved),
		slog.String("outcome", string(report.Outcome)))
	return report, nil
}

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, dir := range []string{g.outputDir, g.detailDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return newFatalStageError(StagePrepareOutput,
				berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "create output directory").WithContext("dir", dir))
		}
	}
	return nil
}

func stageLoadContent(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	reader := content.NewReader(g.cfg.Paths.Content)
	items, failed, err := reader.Discover(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageLoadContent, err)
		}
		return newFatalStageError(StageLoadContent,
			berrors.Wrap(err, berrors.CategoryContent, berrors.SeverityFatal, "enumerate content items"))
	}
	bs.Items = items
	bs.Failed = failed
	bs.Report.ItemsDiscovered = len(items) + len(failed)
	bs.Report.ItemsFailed = len(failed)
	g.recorder.SetItemsDiscovered(bs.Report.ItemsDiscovered)
	for _, f := range failed {
		g.recorder.IncItemResult(metrics.ItemFailed)
		bs.Report.AddIssue(IssueItemLoadFailure, StageLoadContent, SeverityWarning, f.ID, f.Err.Error())
	}
	if len(failed) > 0 {
		return newWarnStageError(StageLoadContent, fmt.Errorf("%d item(s) failed to load", len(failed)))
	}
	return nil
}

func stageRenderItems(ctx context.Context, bs *BuildState) error {
	g := bs.Generator

	// Template availability is a run-level contract; probe before the item loop
	// so a missing template aborts the run instead of failing every item.
	if _, err := g.store.Get(templates.TemplateDetail); err != nil {
		return newFatalStageError(StageRenderItems,
			berrors.Wrap(err, berrors.CategoryTemplate, berrors.SeverityFatal, "load detail template"))
	}
	header, err := g.store.Header(g.cfg.Site.Category)
	if err != nil {
		return newFatalStageError(StageRenderItems,
			berrors.Wrap(err, berrors.CategoryTemplate, berrors.SeverityFatal, "load header template"))
	}

	year := g.now().Year()
	renderFailures := 0
	for _, item := range bs.Items {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageRenderItems, ctx.Err())
		default:
		}

		if !content.IsPublished(item.Meta) {
			slog.Debug("Skipping unpublished item", logfields.Item(item.ID), logfields.Status(item.Meta.Status))
			bs.Report.ItemsSkipped++
			g.recorder.IncItemResult(metrics.ItemSkipped)
			continue
		}

		published, page, rerr := g.renderer.RenderItem(item, header, year)
		if rerr == nil {
			outputPath := filepath.Join(g.detailDir(), item.ID+".html")
			rerr = os.WriteFile(outputPath, []byte(page), 0644)
			if rerr != nil {
				rerr = fmt.Errorf("write %s: %w", outputPath, rerr)
			}
		}
		if rerr != nil {
			// Item-level failure: keep the run going and shield any previously
			// published page from cleanup.
			slog.Warn("Failed to render item", logfields.Item(item.ID), logfields.Error(rerr))
			bs.Failed = append(bs.Failed, content.FailedItem{ID: item.ID, Err: rerr})
			bs.Report.ItemsFailed++
			renderFailures++
			bs.Report.AddIssue(IssueItemRenderFailure, StageRenderItems, SeverityWarning, item.ID, rerr.Error())
			g.recorder.IncItemResult(metrics.ItemFailed)
			continue
		}

		bs.Published = append(bs.Published, published)
		bs.RenderedIDs.Add(item.ID)
		bs.Report.RenderedPages++
		g.recorder.IncItemResult(metrics.ItemRendered)
		slog.Debug("Generated detail page", logfields.Item(item.ID), logfields.Output(published.URL))
	}

	bs.Report.ItemsPublished = len(bs.Published)
	g.recorder.SetItemsPublished(len(bs.Published))
	slog.Info("Detail pages generated", logfields.Count(len(bs.Published)))

	if renderFailures > 0 {
		return newWarnStageError(StageRenderItems, fmt.Errorf("%d item(s) failed to render", renderFailures))
	}
	return nil
}
