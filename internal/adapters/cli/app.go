package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/andrescamacho/armor-tracker/internal/adapters/api"
	"github.com/andrescamacho/armor-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/armor-tracker/internal/adapters/persistence"
	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/application/setup"
	"github.com/andrescamacho/armor-tracker/internal/domain/backup"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/infrastructure/config"
	"github.com/andrescamacho/armor-tracker/internal/infrastructure/database"
	"github.com/andrescamacho/armor-tracker/internal/infrastructure/lockfile"
	"github.com/andrescamacho/armor-tracker/internal/infrastructure/logging"
)

// app is everything one CLI invocation needs, opened in dependency order
// and closed in reverse.
type app struct {
	ctx      context.Context
	cfg      *config.Config
	logger   *logging.Logger
	lock     *lockfile.LockFile
	db       *gorm.DB
	session  *session.Session
	mediator mediator.Mediator
	exporter *metrics.Exporter
}

// openApp loads configuration, takes the session lock and loads the dataset
// and progress state.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}
	a.ctx = common.WithLogger(cmd.Context(), logger.With("session_id", uuid.NewString()))

	a.lock = lockfile.New(cfg.Session.LockFile)
	if err := a.lock.Acquire(); err != nil {
		a.lock = nil
		a.Close()
		return nil, err
	}

	a.db, err = database.Open(&cfg.Database)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	clock := shared.NewRealClock()
	store := persistence.NewGormDocumentRepository(a.db, clock)
	fetcher := api.NewDatasetClientWithOptions(api.ClientOptions{
		Timeout:     cfg.Dataset.Timeout,
		Requests:    cfg.Dataset.RateLimit.Requests,
		Burst:       cfg.Dataset.RateLimit.Burst,
		MaxRetries:  cfg.Dataset.Retry.MaxAttempts,
		BackoffBase: cfg.Dataset.Retry.BackoffBase,
		Clock:       clock,
	})
	loader := setup.NewLoader(store, fetcher, clock, setup.LoaderOptions{
		URL:         cfg.Dataset.URL,
		BundledPath: cfg.Dataset.BundledPath,
		SourcesPath: cfg.Dataset.SourcesPath,
	})

	a.session, err = loader.Open(a.ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load armor data: %w", err)
	}

	codec := backup.NewCodec(backup.Options{
		MaxSizeBytes: cfg.Backup.MaxSizeBytes,
		MaxDepth:     cfg.Backup.MaxDepth,
		Clock:        clock,
	})
	locale, err := language.Parse(cfg.Session.Locale)
	if err != nil {
		locale = language.English
	}
	a.mediator, err = setup.NewHandlerRegistry(a.session, codec, locale).CreateConfiguredMediator()
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Metrics.TextfilePath != "" {
		a.exporter, err = metrics.NewExporter()
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(a.exporter.Commands))
	}

	return a, nil
}

// send dispatches a request through the mediator
func (a *app) send(request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(a.ctx, request)
}

// Close writes the metrics textfile when configured and releases resources
func (a *app) Close() {
	logger := common.LoggerFromContext(a.ctx)

	if a.exporter != nil && a.session != nil && a.cfg.Metrics.TextfilePath != "" {
		if err := a.writeMetrics(a.cfg.Metrics.TextfilePath); err != nil {
			logger.Warn("failed to export metrics", "error", err)
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
	if a.lock != nil {
		if err := a.lock.Release(); err != nil {
			logger.Warn("failed to release lock", "error", err)
		}
	}
	a.logger.Sync()
}

func (a *app) writeMetrics(path string) error {
	if a.exporter == nil {
		exporter, err := metrics.NewExporter()
		if err != nil {
			return err
		}
		a.exporter = exporter
	}
	a.exporter.Progress.Update(a.session.Dataset, a.session.State)
	return a.exporter.WriteTextfile(path)
}

// withApp opens the app, runs fn and closes the app
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
