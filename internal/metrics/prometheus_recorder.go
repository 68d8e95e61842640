package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	registry        *prom.Registry
	stageDuration   *prom.HistogramVec
	buildDuration   prom.Histogram
	stageResults    *prom.CounterVec
	buildOutcome    *prom.CounterVec
	itemResults     *prom.CounterVec
	itemsDiscovered prom.Gauge
	itemsPublished  prom.Gauge
	staleRemoved    prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.itemResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "item_results_total",
			Help:      "Per-item processing outcomes (rendered, skipped, failed)",
		}, []string{"result"})
		pr.itemsDiscovered = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitebuilder",
			Name:      "items_discovered",
			Help:      "Content items discovered in the source tree this run",
		})
		pr.itemsPublished = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitebuilder",
			Name:      "items_published",
			Help:      "Eligible items rendered to detail pages this run",
		})
		pr.staleRemoved = prom.NewCounter(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "stale_outputs_removed_total",
			Help:      "Stale detail pages deleted by the output synchronizer",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.itemResults, pr.itemsDiscovered, pr.itemsPublished, pr.staleRemoved)
	})
	return pr
}

// Registry exposes the underlying registry for textfile export.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncItemResult(result ItemResultLabel) {
	if p == nil || p.itemResults == nil {
		return
	}
	p.itemResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetItemsDiscovered(n int) {
	if p == nil || p.itemsDiscovered == nil {
		return
	}
	p.itemsDiscovered.Set(float64(n))
}

func (p *PrometheusRecorder) SetItemsPublished(n int) {
	if p == nil || p.itemsPublished == nil {
		return
	}
	p.itemsPublished.Set(float64(n))
}

func (p *PrometheusRecorder) IncStaleOutputRemoved() {
	if p == nil || p.staleRemoved == nil {
		return
	}
	p.staleRemoved.Inc()
}
