package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile flushes the recorder's registry to path in the Prometheus
// exposition format, the shape consumed by node_exporter's textfile collector.
// Best effort at the end of a run; callers log and continue on error.
func WriteTextfile(path string, recorder *PrometheusRecorder) error {
	if recorder == nil || recorder.Registry() == nil {
		return fmt.Errorf("no prometheus recorder configured")
	}
	if err := prom.WriteToTextfile(path, recorder.Registry()); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
