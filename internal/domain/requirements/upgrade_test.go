package requirements_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

func TestLevelRequirements(t *testing.T) {
	d := helpers.SampleDataset()
	d.ArmorPieces[0].MaterialsByLevel["2"] = []armor.Requirement{
		{Material: "Opal", Qty: 1},
		{Material: "Mystery Ore", Qty: 2},
		{Material: "Amber", Qty: 0},
	}

	costs := requirements.LevelRequirements(d, "piece-1", 2)

	assert.Equal(t, []requirements.Cost{
		{MaterialID: "mat-b", Qty: 1},
		{MaterialID: "Mystery Ore", Qty: 2},
	}, costs)
	assert.Empty(t, requirements.LevelRequirements(d, "piece-1", 5))
	assert.Empty(t, requirements.LevelRequirements(d, "nope", 1))
}

func TestQuickUpgrade_ExactInventorySucceeds(t *testing.T) {
	// Arrange
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 1})
	s.Inventory["mat-b"] = 1
	s.Inventory["mat-a"] = 5

	// Act
	ok := requirements.QuickUpgrade(d, s, "piece-1", 2)

	// Assert
	require.True(t, ok)
	assert.Equal(t, 2, s.Levels["piece-1"])
	assert.Equal(t, 0, s.Inventory["mat-b"])
	assert.Equal(t, 5, s.Inventory["mat-a"])
}

func TestQuickUpgrade_OneShortIsNoop(t *testing.T) {
	// Arrange
	d := helpers.SampleDataset()
	d.ArmorPieces[0].MaterialsByLevel["2"] = []armor.Requirement{
		{Material: "Opal", Qty: 2},
		{Material: "Amber", Qty: 3},
	}
	s := helpers.SampleState(map[string]int{"piece-1": 1})
	s.Inventory["mat-b"] = 2
	s.Inventory["mat-a"] = 2
	before := s.Clone()

	// Act
	ok := requirements.QuickUpgrade(d, s, "piece-1", 2)

	// Assert
	assert.False(t, ok)
	assert.Equal(t, before.Inventory, s.Inventory)
	assert.Equal(t, before.Levels, s.Levels)
}

func TestQuickUpgrade_TargetMustAdvance(t *testing.T) {
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 2})
	s.Inventory["mat-b"] = 10

	assert.False(t, requirements.QuickUpgrade(d, s, "piece-1", 2))
	assert.False(t, requirements.QuickUpgrade(d, s, "piece-1", 1))
	assert.Equal(t, 10, s.Inventory["mat-b"])
}

func TestQuickUpgrade_EmptyRequirementsFail(t *testing.T) {
	d := helpers.SampleDataset()
	d.ArmorPieces[0].MaterialsByLevel["1"] = nil
	s := helpers.SampleState(nil)

	assert.False(t, requirements.QuickUpgrade(d, s, "piece-1", 1))
	assert.Equal(t, 0, s.Levels["piece-1"])
}

func TestReadyUpgrades(t *testing.T) {
	// Arrange
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 1, "piece-2": 4})
	s.Inventory["mat-b"] = 1

	// Act
	ready := requirements.ReadyUpgrades(d, s)

	// Assert
	assert.Equal(t, []requirements.ReadyUpgrade{{
		PieceID: "piece-1",
		Level:   2,
		Costs:   []requirements.Cost{{MaterialID: "mat-b", Qty: 1}},
	}}, ready)
}

func TestReadyUpgrades_NextLevelOnly(t *testing.T) {
	d := helpers.SampleDataset()
	s := helpers.SampleState(nil)
	// Enough for level 2 of piece-1 but not for level 1.
	s.Inventory["mat-b"] = 1

	assert.Empty(t, requirements.ReadyUpgrades(d, s))
}

func TestPieceLevels(t *testing.T) {
	d := helpers.SampleDataset()
	s := helpers.SampleState(map[string]int{"piece-1": 1})
	s.Inventory["mat-b"] = 1

	levels := requirements.PieceLevels(d, s, "piece-1")

	require.Len(t, levels, 4)
	assert.True(t, levels[0].Done)
	assert.True(t, levels[1].Ready)
	assert.False(t, levels[2].Ready)
	assert.False(t, levels[3].Ready)
	assert.Nil(t, requirements.PieceLevels(d, s, "missing"))
}
