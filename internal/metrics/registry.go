package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder pairs a dedicated registry with the metrics registered on it.
type Recorder struct {
	*Metrics
	registry *prometheus.Registry
}

// NewRecorder creates a new Prometheus registry with metrics
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		Metrics:  NewMetrics(reg),
		registry: reg,
	}
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric in the node_exporter textfile format.
// The file is written to a temporary sibling and renamed into place.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
