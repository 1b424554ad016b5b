package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/andrescamacho/armor-tracker/internal/application/progress/queries"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

func TestGetSummary(t *testing.T) {
	// Arrange
	sess, _, _ := helpers.NewSampleSession(map[string]int{"piece-1": 1, "piece-2": 0})
	sess.State.Inventory["mat-b"] = 10

	// Act
	resp, err := queries.NewGetSummaryHandler(sess).Handle(context.Background(), &queries.GetSummaryQuery{})

	// Assert
	require.NoError(t, err)
	summary := resp.(*queries.SummaryResponse)
	assert.Equal(t, 1, summary.CompletedLevels)
	assert.Equal(t, 8, summary.TotalLevels)
	assert.Equal(t, map[string]int{"mat-a": 4, "mat-b": 10}, summary.RemainingReq)
	assert.Equal(t, 1, summary.DeficitCount)
	assert.Equal(t, []requirements.Cost{{MaterialID: "mat-b", Qty: 10}, {MaterialID: "mat-a", Qty: 4}}, summary.TopRemaining)
	assert.Equal(t, []requirements.CategoryProgress{{Category: "Sets", Pieces: 2, Completed: 1, Total: 8}}, summary.Categories)
	assert.Equal(t, "Breath of the Wild", summary.Game)
}

func TestGetSummary_TopLimit(t *testing.T) {
	sess, _, _ := helpers.NewSampleSession(nil)

	resp, err := queries.NewGetSummaryHandler(sess).Handle(context.Background(), &queries.GetSummaryQuery{TopLimit: 1})

	require.NoError(t, err)
	assert.Len(t, resp.(*queries.SummaryResponse).TopRemaining, 1)
}

func TestListMaterials_UsesSavedViewUnlessOverridden(t *testing.T) {
	// Arrange
	sess, _, _ := helpers.NewSampleSession(map[string]int{"piece-1": 4, "piece-2": 4})
	sess.State.UI.Materials = &progress.MaterialsView{DeficitsOnly: true, Sort: progress.SortAlpha}
	handler := queries.NewListMaterialsHandler(sess, language.English)

	// Act
	saved, err := handler.Handle(context.Background(), &queries.ListMaterialsQuery{})
	require.NoError(t, err)
	all := false
	overridden, err := handler.Handle(context.Background(), &queries.ListMaterialsQuery{DeficitsOnly: &all})
	require.NoError(t, err)

	// Assert
	assert.Empty(t, saved.([]requirements.MaterialRow))
	rows := overridden.([]requirements.MaterialRow)
	require.Len(t, rows, 2)
	assert.Equal(t, "Amber", rows[0].Material.Name)
	assert.Equal(t, "Opal", rows[1].Material.Name)
}

func TestListReadyUpgrades(t *testing.T) {
	sess, _, _ := helpers.NewSampleSession(nil)
	sess.State.Inventory["mat-a"] = 2

	resp, err := queries.NewListReadyUpgradesHandler(sess).Handle(context.Background(), &queries.ListReadyUpgradesQuery{})

	require.NoError(t, err)
	assert.Equal(t, []requirements.ReadyUpgrade{{
		PieceID: "piece-1",
		Level:   1,
		Costs:   []requirements.Cost{{MaterialID: "mat-a", Qty: 2}},
	}}, resp)
}

func TestListArmor(t *testing.T) {
	sess, _, _ := helpers.NewSampleSession(map[string]int{"piece-2": 3})
	sess.State.Inventory["mat-b"] = 4
	handler := queries.NewArmorHandler(sess)

	resp, err := handler.Handle(context.Background(), &queries.ListArmorQuery{})
	require.NoError(t, err)
	rows := resp.([]queries.ArmorRow)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Level)
	assert.False(t, rows[0].Ready)
	assert.Equal(t, 3, rows[1].Level)
	assert.True(t, rows[1].Ready)

	resp, err = handler.Handle(context.Background(), &queries.ListArmorQuery{Category: "Other"})
	require.NoError(t, err)
	assert.Empty(t, resp)
}

func TestGetPiece(t *testing.T) {
	sess, _, _ := helpers.NewSampleSession(map[string]int{"piece-1": 2})
	handler := queries.NewArmorHandler(sess)

	resp, err := handler.Handle(context.Background(), &queries.GetPieceQuery{PieceID: "piece-1"})

	require.NoError(t, err)
	piece := resp.(*queries.PieceResponse)
	assert.Equal(t, 2, piece.Level)
	require.Len(t, piece.Levels, 4)
	assert.True(t, piece.Levels[1].Done)
	assert.False(t, piece.Levels[2].Done)

	_, err = handler.Handle(context.Background(), &queries.GetPieceQuery{PieceID: "nope"})
	assert.Error(t, err)
}
