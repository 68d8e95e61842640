package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// ItemResultLabel enumerates per-item processing outcomes.
type ItemResultLabel string

const (
	ItemRendered ItemResultLabel = "rendered"
	ItemSkipped  ItemResultLabel = "skipped"
	ItemFailed   ItemResultLabel = "failed"
)

// Recorder defines observability hooks for build and stage metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. The
// NoopRecorder allows optional injection.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed|canceled
	IncItemResult(result ItemResultLabel)
	SetItemsDiscovered(n int)
	SetItemsPublished(n int)
	IncStaleOutputRemoved()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) IncItemResult(ItemResultLabel)              {}
func (NoopRecorder) SetItemsDiscovered(int)                     {}
func (NoopRecorder) SetItemsPublished(int)                      {}
func (NoopRecorder) IncStaleOutputRemoved()                     {}
