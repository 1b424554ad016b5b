package requirements_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

func TestSumRemainingRequirements_SampleLevels(t *testing.T) {
	// Arrange
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 1, "piece-2": 2})

	// Act
	remaining := requirements.SumRemainingRequirements(d, s)

	// Assert
	assert.Equal(t, map[string]int{"mat-a": 3, "mat-b": 7}, remaining)
}

func TestSumRemainingRequirements_ExcludesPaidLevels(t *testing.T) {
	d := &armor.Dataset{
		SchemaVersion: 1,
		Materials:     []armor.Material{{ID: "amber", Name: "Amber"}, {ID: "opal", Name: "Opal"}},
		ArmorPieces: []armor.ArmorPiece{{
			ID: "p1",
			MaterialsByLevel: map[string][]armor.Requirement{
				"1": {{Material: "Amber", Qty: 2}},
				"2": {{Material: "Opal", Qty: 1}},
			},
		}},
	}
	s := &progress.State{Levels: map[string]int{"p1": 1}}

	assert.Equal(t, map[string]int{"opal": 1}, requirements.SumRemainingRequirements(d, s))
}

func TestSumRemainingRequirements_SkipsUnresolvableNamesAndBadKeys(t *testing.T) {
	d := &armor.Dataset{
		SchemaVersion: 1,
		Materials:     []armor.Material{{ID: "amber", Name: "Amber"}},
		ArmorPieces: []armor.ArmorPiece{{
			ID: "p1",
			MaterialsByLevel: map[string][]armor.Requirement{
				"1":    {{Material: "Amber", Qty: 2}, {Material: "Unobtainium", Qty: 5}},
				"next": {{Material: "Amber", Qty: 100}},
			},
		}},
	}

	remaining := requirements.SumRemainingRequirements(d, &progress.State{})

	assert.Equal(t, map[string]int{"amber": 2}, remaining)
}

func TestSumRemainingRequirements_AllMaxedIsEmpty(t *testing.T) {
	// Arrange
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 4, "piece-2": 4})

	// Act
	summary := requirements.Counts(d, s)

	// Assert
	assert.Empty(t, summary.RemainingReq)
	assert.Equal(t, summary.TotalLevels, summary.CompletedLevels)
	assert.Equal(t, 0, summary.RemainingLevels())
	assert.InDelta(t, 100.0, summary.Percent(), 0.001)
}

func TestCounts_SampleLevels(t *testing.T) {
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 1, "piece-2": 2})
	s.Levels["retired-piece"] = 4

	summary := requirements.Counts(d, s)

	assert.Equal(t, 3, summary.CompletedLevels)
	assert.Equal(t, 8, summary.TotalLevels)
	assert.Equal(t, 5, summary.RemainingLevels())
}

func TestCounts_EmptyDataset(t *testing.T) {
	summary := requirements.Counts(&armor.Dataset{SchemaVersion: 1}, &progress.State{})

	assert.Equal(t, 0, summary.TotalLevels)
	assert.Zero(t, summary.Percent())
}

func TestDeficitCountAndTopRemaining(t *testing.T) {
	// Arrange
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 1, "piece-2": 2})
	s.Inventory["mat-a"] = 3
	remaining := requirements.SumRemainingRequirements(d, s)

	// Act
	deficits := requirements.DeficitCount(s, remaining)
	top := requirements.TopRemaining(d, remaining, 1)

	// Assert
	assert.Equal(t, 1, deficits)
	assert.Equal(t, []requirements.Cost{{MaterialID: "mat-b", Qty: 7}}, top)
}

func TestProgressByCategory(t *testing.T) {
	d := helpers.SampleDataset()
	d.ArmorPieces = append(d.ArmorPieces, armor.ArmorPiece{ID: "piece-3"})
	s := helpers.SampleState(map[string]int{"piece-1": 4, "piece-2": 1})

	got := requirements.ProgressByCategory(d, s)

	assert.Equal(t, []requirements.CategoryProgress{
		{Category: "Sets", Pieces: 2, Completed: 5, Total: 8},
		{Category: armor.UnsortedGroup, Pieces: 1, Completed: 0, Total: 4},
	}, got)
}
