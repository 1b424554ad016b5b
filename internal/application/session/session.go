// Package session owns the live dataset and progress state of one tracker run.
package session

import (
	"context"
	"encoding/json"

	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/domain/storage"
)

// Session holds the dataset and state every handler works on. The in-memory
// copy is authoritative; storage failures are logged and otherwise ignored.
type Session struct {
	Dataset *armor.Dataset
	State   *progress.State

	store storage.DocumentStore
	clock shared.Clock
}

// New creates a session over an already loaded dataset and state.
// If clock is nil, uses RealClock
func New(d *armor.Dataset, s *progress.State, store storage.DocumentStore, clock shared.Clock) *Session {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Session{Dataset: d, State: s, store: store, clock: clock}
}

// Clock returns the session's time source.
func (s *Session) Clock() shared.Clock {
	return s.clock
}

// Persist stamps lastUpdated and writes the state document.
func (s *Session) Persist(ctx context.Context) {
	s.State.Touch(s.clock.Now())
	s.put(ctx, storage.StateKey, s.State)
}

// PersistDataset writes the dataset document.
func (s *Session) PersistDataset(ctx context.Context) {
	s.put(ctx, storage.DataKey, s.Dataset)
}

// Reset replaces the state with a fresh default and persists it.
func (s *Session) Reset(ctx context.Context) {
	s.State = progress.DefaultState(s.Dataset, s.clock.Now())
	s.Persist(ctx)
}

// Replace swaps in a dataset and state together, as a backup import does,
// then persists both.
func (s *Session) Replace(ctx context.Context, d *armor.Dataset, st *progress.State) {
	s.Dataset = d
	s.State = st
	s.PersistDataset(ctx)
	s.Persist(ctx)
}

func (s *Session) put(ctx context.Context, key string, v any) {
	logger := common.LoggerFromContext(ctx)
	if s.store == nil {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		logger.Warn("failed to encode document", "key", key, "error", err)
		return
	}
	if err := s.store.Put(ctx, key, body); err != nil {
		logger.Warn("failed to persist document", "key", key, "error", err)
	}
}
