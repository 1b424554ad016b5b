package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

func TestDefaultState_ZeroedFromDatasetIDs(t *testing.T) {
	// Act
	s := progress.DefaultState(helpers.SampleDataset(), helpers.FixedTime)

	// Assert
	assert.Equal(t, progress.CurrentSchemaVersion, s.SchemaVersion)
	assert.Equal(t, map[string]int{"piece-1": 0, "piece-2": 0}, s.Levels)
	assert.Equal(t, map[string]int{"mat-a": 0, "mat-b": 0}, s.Inventory)
	assert.Equal(t, "2024-03-01T09:30:00.000Z", s.LastUpdated)
	assert.Empty(t, s.UI.OpenCats)
	assert.NotNil(t, s.UI.OpenCats)
}

func TestEnsureStateAligned_FillsMissingAndKeepsOrphans(t *testing.T) {
	// Arrange
	s := &progress.State{
		SchemaVersion: progress.CurrentSchemaVersion,
		Levels:        map[string]int{"piece-1": 3, "retired-piece": 2},
		Inventory:     map[string]int{"mat-b": 5},
	}

	// Act
	progress.EnsureStateAligned(helpers.SampleDataset(), s)

	// Assert
	assert.Equal(t, map[string]int{"piece-1": 3, "piece-2": 0, "retired-piece": 2}, s.Levels)
	assert.Equal(t, map[string]int{"mat-a": 0, "mat-b": 5}, s.Inventory)
	assert.NotNil(t, s.UI.OpenCats)
	assert.NotNil(t, s.UI.OpenPieces)
	require.NotNil(t, s.UI.Materials)
	assert.Equal(t, progress.SortNeeded, s.UI.Materials.Sort)
}

func TestEnsureStateAligned_Idempotent(t *testing.T) {
	d := helpers.SampleDataset()
	s := &progress.State{Levels: map[string]int{"piece-2": 1}}

	progress.EnsureStateAligned(d, s)
	first := s.Clone()
	progress.EnsureStateAligned(d, s)

	assert.Equal(t, first, s)
}

func TestEnsureStateAligned_NilStateIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		progress.EnsureStateAligned(helpers.SampleDataset(), nil)
	})
}

func TestEnsureMaterialsView(t *testing.T) {
	tests := []struct {
		name     string
		sort     string
		dataset  *armor.Dataset
		wantSort string
	}{
		{"keeps alpha", progress.SortAlpha, helpers.SampleDataset(), progress.SortAlpha},
		{"keeps category when materials have categories", progress.SortCategory, helpers.SampleDataset(), progress.SortCategory},
		{"unknown sort falls back", "price", helpers.SampleDataset(), progress.SortNeeded},
		{"category without categories falls back", progress.SortCategory, &armor.Dataset{Materials: []armor.Material{{ID: "m", Name: "M"}}}, progress.SortNeeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := progress.DefaultState(tt.dataset, helpers.FixedTime)
			s.UI.Materials.Sort = tt.sort

			view := progress.EnsureMaterialsView(tt.dataset, s)

			assert.Equal(t, tt.wantSort, view.Sort)
			assert.Same(t, s.UI.Materials, view)
		})
	}
}

func TestState_LevelIsClamped(t *testing.T) {
	s := helpers.SampleState(map[string]int{"piece-1": 9})

	assert.Equal(t, 4, s.Level("piece-1"))
	assert.Equal(t, 0, s.Level("unknown"))
}
