package setup

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/andrescamacho/armor-tracker/assets"
	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/domain/storage"
)

// ErrNoDataset is returned when neither the store, the remote URL nor the
// bundled copy yields a valid dataset.
var ErrNoDataset = errors.New("no valid armor dataset available")

// Fetcher downloads a JSON document.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// LoaderOptions names the dataset locations. Empty paths use the embedded assets.
type LoaderOptions struct {
	URL         string
	BundledPath string
	SourcesPath string
}

// Loader resolves the dataset and initial state for a session.
type Loader struct {
	store   storage.DocumentStore
	fetcher Fetcher
	clock   shared.Clock
	opts    LoaderOptions
}

// NewLoader creates a loader. fetcher may be nil when no URL is configured.
func NewLoader(store storage.DocumentStore, fetcher Fetcher, clock shared.Clock, opts LoaderOptions) *Loader {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Loader{store: store, fetcher: fetcher, clock: clock, opts: opts}
}

// Open loads the dataset and state and returns the session owning them.
func (l *Loader) Open(ctx context.Context) (*session.Session, error) {
	d, err := l.LoadArmorData(ctx)
	if err != nil {
		return nil, err
	}
	s := l.InitializeState(ctx, d)
	return session.New(d, s, l.store, l.clock), nil
}

// LoadArmorData returns the persisted dataset if it is valid, otherwise the
// remote one, otherwise the bundled one. A remote or bundled dataset that
// validates is persisted. Source metadata is merged every time.
func (l *Loader) LoadArmorData(ctx context.Context) (*armor.Dataset, error) {
	logger := common.LoggerFromContext(ctx)

	d := l.persistedDataset(ctx)

	if d == nil && l.opts.URL != "" && l.fetcher != nil {
		d = l.remoteDataset(ctx)
	}

	if d == nil {
		bundled, err := l.bundledDataset()
		if err != nil {
			return nil, err
		}
		d = bundled
		l.persistDataset(ctx, d)
		logger.Debug("using bundled dataset", "path", l.opts.BundledPath)
	}

	sources, err := l.sources()
	if err != nil {
		logger.Warn("failed to load armor sources", "error", err)
	} else {
		d.ApplySources(sources)
	}
	return d, nil
}

// InitializeState reads the persisted state, migrates it if legacy, falls back
// to a default state when absent or unusable, aligns it to d and persists it.
func (l *Loader) InitializeState(ctx context.Context, d *armor.Dataset) *progress.State {
	logger := common.LoggerFromContext(ctx)
	now := l.clock.Now()

	var state *progress.State
	raw, err := l.store.Get(ctx, storage.StateKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		logger.Warn("failed to read persisted state", "error", err)
	default:
		doc, perr := progress.ParseDocument(raw)
		if perr != nil {
			logger.Warn("discarding unreadable state", "error", perr)
			break
		}
		if s, ok := progress.MigrateOldStateIfNeeded(doc, now).ToState(); ok {
			state = s
		}
	}
	if state == nil {
		state = progress.DefaultState(d, now)
	}
	progress.EnsureStateAligned(d, state)

	session.New(d, state, l.store, l.clock).Persist(ctx)
	return state
}

func (l *Loader) persistedDataset(ctx context.Context) *armor.Dataset {
	raw, err := l.store.Get(ctx, storage.DataKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			common.LoggerFromContext(ctx).Warn("failed to read persisted dataset", "error", err)
		}
		return nil
	}
	d, err := armor.Parse(raw)
	if err != nil || !armor.ValidateData(d) {
		return nil
	}
	return d
}

func (l *Loader) remoteDataset(ctx context.Context) *armor.Dataset {
	logger := common.LoggerFromContext(ctx)
	raw, err := l.fetcher.FetchJSON(ctx, l.opts.URL)
	if err != nil {
		logger.Warn("remote dataset fetch failed, falling back to bundled copy", "url", l.opts.URL, "error", err)
		return nil
	}
	d, err := armor.Parse(raw)
	if err != nil || !armor.ValidateData(d) {
		logger.Warn("remote dataset is invalid, falling back to bundled copy", "url", l.opts.URL)
		return nil
	}
	l.persistDataset(ctx, d)
	return d
}

func (l *Loader) bundledDataset() (*armor.Dataset, error) {
	raw := assets.ArmorData
	if l.opts.BundledPath != "" {
		content, err := os.ReadFile(l.opts.BundledPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoDataset, err)
		}
		raw = content
	}
	d, err := armor.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDataset, err)
	}
	if !armor.ValidateData(d) {
		return nil, ErrNoDataset
	}
	return d, nil
}

func (l *Loader) sources() (*armor.Sources, error) {
	raw := assets.ArmorSources
	if l.opts.SourcesPath != "" {
		content, err := os.ReadFile(l.opts.SourcesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read sources: %w", err)
		}
		raw = content
	}
	return armor.ParseSources(raw)
}

func (l *Loader) persistDataset(ctx context.Context, d *armor.Dataset) {
	session.New(d, nil, l.store, l.clock).PersistDataset(ctx)
}
