package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/armor-tracker/internal/domain/backup"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// Request outcomes. Rejections are user input the tracker refused; errors are everything else.
const (
	statusSuccess  = "success"
	statusBlocked  = "blocked"
	statusRejected = "rejected"
	statusError    = "error"
)

// CommandMetricsCollector records tracker command and query executions
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
	backupRejects   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command and query execution duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"command", "status"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands and queries executed by name and outcome",
			},
			[]string{"command", "status"},
		),
		backupRejects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backup_rejections_total",
				Help:      "Rejected backup imports by reason",
			},
			[]string{"reason"},
		),
	}
}

// Register registers all command metrics with the registry
func (c *CommandMetricsCollector) Register(registry prometheus.Registerer) error {
	for _, metric := range []prometheus.Collector{c.commandDuration, c.commandsTotal, c.backupRejects} {
		if err := registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution records one execution and classifies its error
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, duration float64, err error) {
	status := outcome(err)
	c.commandDuration.WithLabelValues(commandName, status).Observe(duration)
	c.commandsTotal.WithLabelValues(commandName, status).Inc()

	var backupErr *backup.Error
	if errors.As(err, &backupErr) {
		c.backupRejects.WithLabelValues(string(backupErr.Kind)).Inc()
	}
}

func outcome(err error) string {
	var (
		blocked   *shared.UpgradeBlockedError
		notFound  *shared.NotFoundError
		invalid   *shared.ValidationError
		backupErr *backup.Error
	)
	switch {
	case err == nil:
		return statusSuccess
	case errors.As(err, &blocked):
		return statusBlocked
	case errors.As(err, &notFound), errors.As(err, &invalid), errors.As(err, &backupErr):
		return statusRejected
	default:
		return statusError
	}
}
