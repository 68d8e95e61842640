// Package metrics defines the observability hooks for the site build.
//
// The build is a run-once batch process, so metrics are not scraped; the
// PrometheusRecorder registry can be flushed to a node_exporter textfile with
// WriteTextfile after the run completes. The Recorder interface keeps call
// sites free of any Prometheus dependency and defaults to a no-op.
package metrics
