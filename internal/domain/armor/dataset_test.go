package armor_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

func TestValidateData(t *testing.T) {
	tests := []struct {
		name string
		data *armor.Dataset
		want bool
	}{
		{"nil dataset", nil, false},
		{"sample dataset", helpers.SampleDataset(), true},
		{"empty collections are structurally valid", &armor.Dataset{SchemaVersion: 1, ArmorPieces: []armor.ArmorPiece{}, Materials: []armor.Material{}}, true},
		{"wrong schema version", &armor.Dataset{SchemaVersion: 2, ArmorPieces: []armor.ArmorPiece{}, Materials: []armor.Material{}}, false},
		{"missing pieces", &armor.Dataset{SchemaVersion: 1, Materials: []armor.Material{}}, false},
		{"missing materials", &armor.Dataset{SchemaVersion: 1, ArmorPieces: []armor.ArmorPiece{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, armor.ValidateData(tt.data))
		})
	}
}

func TestParse_DecodesSampleDocument(t *testing.T) {
	// Act
	d, err := armor.Parse([]byte(helpers.SampleDatasetJSON))

	// Assert
	require.NoError(t, err)
	assert.True(t, armor.ValidateData(d))
	assert.Equal(t, helpers.SampleDataset().ArmorPieces, d.ArmorPieces)
	assert.Equal(t, helpers.SampleDataset().Materials, d.Materials)
}

func TestParse_NullCollectionsAreInvalid(t *testing.T) {
	d, err := armor.Parse([]byte(`{"schemaVersion": 1, "armorPieces": null, "materials": []}`))

	require.NoError(t, err)
	assert.False(t, armor.ValidateData(d))
}

func TestParse_RejectsWrongTypes(t *testing.T) {
	_, err := armor.Parse([]byte(`{"schemaVersion": "1", "armorPieces": [], "materials": []}`))

	assert.Error(t, err)
}

func TestRequirement_AcceptsAliases(t *testing.T) {
	var reqs []armor.Requirement

	err := json.Unmarshal([]byte(`[
		{"material": "Amber", "qty": 2},
		{"name": "Opal", "quantity": 3},
		{"material": "Topaz", "qty": -4},
		{"material": "Ruby", "qty": 1.8}
	]`), &reqs)

	require.NoError(t, err)
	assert.Equal(t, []armor.Requirement{
		{Material: "Amber", Qty: 2},
		{Material: "Opal", Qty: 3},
		{Material: "Topaz", Qty: 0},
		{Material: "Ruby", Qty: 1},
	}, reqs)
}

func TestArmorPiece_GroupingFallback(t *testing.T) {
	p := armor.ArmorPiece{ID: "x", SetCategory: "  ", SetName: ""}

	assert.Equal(t, armor.UnsortedGroup, p.Category())
	assert.Equal(t, armor.UnsortedGroup, p.Set())

	p.SetCategory = "Champions"
	assert.Equal(t, "Champions", p.Category())
}

func TestArmorPiece_Levels(t *testing.T) {
	p := armor.ArmorPiece{MaterialsByLevel: map[string][]armor.Requirement{
		"3": nil, "1": nil, "x": nil, " 2 ": nil,
	}}

	assert.Equal(t, []int{1, 2, 3}, p.Levels())
}

func TestDataset_Lookups(t *testing.T) {
	d := helpers.SampleDataset()

	assert.Equal(t, map[string]string{"Amber": "mat-a", "Opal": "mat-b"}, d.MaterialIDsByName())
	assert.Equal(t, []string{"piece-1", "piece-2"}, d.PieceIDs())
	assert.Equal(t, []string{"mat-a", "mat-b"}, d.MaterialIDs())
	assert.Equal(t, 8, d.TotalLevels())
	assert.True(t, d.HasCategories())

	p, ok := d.Piece("piece-2")
	require.True(t, ok)
	assert.Equal(t, "Piece Two", p.Name)

	_, ok = d.Material("mat-z")
	assert.False(t, ok)
}

func TestDataset_LookupIsRebuiltAfterRename(t *testing.T) {
	d := helpers.SampleDataset()
	_ = d.MaterialIDsByName()

	d.Materials[0].Name = "Amber Chunk"

	lookup := d.MaterialIDsByName()
	assert.Equal(t, "mat-a", lookup["Amber Chunk"])
	_, stale := lookup["Amber"]
	assert.False(t, stale)
}

func TestApplySources(t *testing.T) {
	// Arrange
	d := helpers.SampleDataset()
	src, err := armor.ParseSources([]byte(`{
		"armor": {"piece-1": {"regions": ["Hateno"], "where": "Shop"}, "ghost": {"where": "nowhere"}},
		"materials": {"mat-b": {"location": "Mines", "notes": "Rare"}}
	}`))
	require.NoError(t, err)

	// Act
	d.ApplySources(src)

	// Assert
	require.NotNil(t, d.ArmorPieces[0].Source)
	assert.Equal(t, []string{"Hateno"}, d.ArmorPieces[0].Source.Regions)
	assert.Nil(t, d.ArmorPieces[1].Source)

	where, coords, notes := d.Materials[1].Acquisition()
	assert.Equal(t, "Mines", where)
	assert.Empty(t, coords)
	assert.Equal(t, "Rare", notes)
}

func TestDataset_SourcesAreNotSerialized(t *testing.T) {
	d := helpers.SampleDataset()
	d.ApplySources(&armor.Sources{Armor: map[string]armor.PieceSource{"piece-1": {Where: "Shop"}}})

	raw, err := json.Marshal(d)

	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Shop")
}
