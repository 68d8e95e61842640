package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// StageName identifies a build stage in reports, logs, and metrics.
type StageName string

const (
	StagePrepareOutput  StageName = "prepare_output"
	StageLoadContent    StageName = "load_content"
	StageRenderItems    StageName = "render_items"
	StageComposeListing StageName = "compose_listing"
	StageAboutPage      StageName = "about_page"
	StageSyncOutputs    StageName = "sync_outputs"
	StageCopyAssets     StageName = "copy_assets"
	StageVerifyOutput   StageName = "verify_output"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages of one run.
type BuildState struct {
	Generator *Generator
	Items     []content.Item       // everything the reader loaded
	Failed    []content.FailedItem // items whose load or render failed this run
	Published []render.PublishedItem
	// RenderedIDs is the set of detail pages written this run; the synchronizer
	// keeps RenderedIDs plus failed ids and deletes everything else.
	RenderedIDs sets.Set[string]
	// ListingCards is the number of cards composed into the listing page,
	// checked against the emitted HTML by the verification stage.
	ListingCards int
	Report       *BuildReport
	Timings      map[StageName]time.Duration
	start        time.Time
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{
		Generator:   g,
		RenderedIDs: sets.New[string](),
		Report:      report,
		Timings:     make(map[StageName]time.Duration),
		start:       time.Now(),
	}
}

// failedIDs returns the ids of items that failed this run as a set.
func (bs *BuildState) failedIDs() sets.Set[string] {
	s := sets.New[string]()
	for _, f := range bs.Failed {
		s.Add(f.ID)
	}
	return s
}

// namedStage pairs a stage with its reporting name.
type namedStage struct {
	name StageName
	fn   Stage
}

// pipelineBuilder assembles the ordered stage list.
type pipelineBuilder struct {
	stages []namedStage
}

// NewPipeline starts an empty stage pipeline.
func NewPipeline() *pipelineBuilder { return &pipelineBuilder{} }

// Add appends a named stage.
func (b *pipelineBuilder) Add(name StageName, fn Stage) *pipelineBuilder {
	b.stages = append(b.stages, namedStage{name: name, fn: fn})
	return b
}

// Build returns the ordered stages.
func (b *pipelineBuilder) Build() []namedStage { return b.stages }

// runStages executes stages in order, recording timing and stopping on first fatal error.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	rec := bs.Generator.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.StageErrorKinds[st.name] = se.Kind
			return se
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.name] = dur
		bs.Report.StageDurations[string(st.name)] = dur
		rec.ObserveStageDuration(string(st.name), dur)

		sc := bs.Report.StageCounts[st.name]
		if err == nil {
			sc.Success++
			bs.Report.StageCounts[st.name] = sc
			rec.IncStageResult(string(st.name), metrics.ResultSuccess)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.name, err)
		}
		bs.Report.StageErrorKinds[st.name] = se.Kind
		switch se.Kind {
		case StageErrorWarning:
			sc.Warning++
			bs.Report.StageCounts[st.name] = sc
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			rec.IncStageResult(string(st.name), metrics.ResultWarning)
			continue
		case StageErrorCanceled:
			sc.Canceled++
			bs.Report.StageCounts[st.name] = sc
			bs.Report.Errors = append(bs.Report.Errors, se)
			rec.IncStageResult(string(st.name), metrics.ResultCanceled)
			return se
		default:
			sc.Fatal++
			bs.Report.StageCounts[st.name] = sc
			bs.Report.Errors = append(bs.Report.Errors, se)
			rec.IncStageResult(string(st.name), metrics.ResultFatal)
			return se
		}
	}
	return nil
}
