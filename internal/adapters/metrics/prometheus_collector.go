package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "armor_tracker"
	// Subsystem for progress metrics
	subsystem = "progress"
)

// Exporter owns a Prometheus registry and writes it as a node_exporter textfile
type Exporter struct {
	registry *prometheus.Registry
	Progress *ProgressCollector
	Commands *CommandMetricsCollector
}

// NewExporter creates a registry with the progress and command collectors registered
func NewExporter() (*Exporter, error) {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		Progress: NewProgressCollector(),
		Commands: NewCommandMetricsCollector(),
	}
	if err := e.Progress.Register(e.registry); err != nil {
		return nil, fmt.Errorf("failed to register progress metrics: %w", err)
	}
	if err := e.Commands.Register(e.registry); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return e, nil
}

// Registry returns the underlying registry
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically so a scraping node_exporter never sees half of it.
func (e *Exporter) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
