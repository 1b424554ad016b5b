package helpers

import (
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// NewSampleSession returns a session over SampleDataset with the given levels,
// backed by a fresh memory store and a mock clock at FixedTime.
func NewSampleSession(levels map[string]int) (*session.Session, *MemoryDocumentStore, *shared.MockClock) {
	store := NewMemoryDocumentStore()
	clock := shared.NewMockClock(FixedTime)
	return session.New(SampleDataset(), SampleState(levels), store, clock), store, clock
}
