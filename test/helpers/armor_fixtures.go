package helpers

import (
	"time"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
)

// FixedTime is the instant used by fixtures that need a timestamp.
var FixedTime = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

// SampleDataset returns a two-piece, two-material dataset.
//
//	piece-1: 1 Amber×2, 2 Opal×1, 3 Amber×1, 4 Opal×2
//	piece-2: 1 Opal×3,  2 Amber×1, 3 Amber×2, 4 Opal×4
func SampleDataset() *armor.Dataset {
	return &armor.Dataset{
		SchemaVersion: armor.SchemaVersion,
		Game:          "Breath of the Wild",
		Materials: []armor.Material{
			{ID: "mat-a", Name: "Amber", Category: "Gems"},
			{ID: "mat-b", Name: "Opal", Category: "Gems"},
		},
		ArmorPieces: []armor.ArmorPiece{
			{
				ID:          "piece-1",
				Name:        "Piece One",
				Slot:        "Head",
				SetCategory: "Sets",
				SetName:     "Alpha",
				MaterialsByLevel: map[string][]armor.Requirement{
					"1": {{Material: "Amber", Qty: 2}},
					"2": {{Material: "Opal", Qty: 1}},
					"3": {{Material: "Amber", Qty: 1}},
					"4": {{Material: "Opal", Qty: 2}},
				},
			},
			{
				ID:          "piece-2",
				Name:        "Piece Two",
				Slot:        "Body",
				SetCategory: "Sets",
				SetName:     "Alpha",
				MaterialsByLevel: map[string][]armor.Requirement{
					"1": {{Material: "Opal", Qty: 3}},
					"2": {{Material: "Amber", Qty: 1}},
					"3": {{Material: "Amber", Qty: 2}},
					"4": {{Material: "Opal", Qty: 4}},
				},
			},
		},
	}
}

// SampleState returns an aligned state for SampleDataset with the given levels applied.
func SampleState(levels map[string]int) *progress.State {
	s := progress.DefaultState(SampleDataset(), FixedTime)
	for id, lvl := range levels {
		s.Levels[id] = lvl
	}
	return s
}

// SampleDatasetJSON is SampleDataset as a raw document.
const SampleDatasetJSON = `{
  "schemaVersion": 1,
  "game": "Breath of the Wild",
  "armorPieces": [
    {"id": "piece-1", "name": "Piece One", "slot": "Head", "setCategory": "Sets", "setName": "Alpha",
     "materialsByLevel": {
       "1": [{"material": "Amber", "qty": 2}],
       "2": [{"material": "Opal", "qty": 1}],
       "3": [{"material": "Amber", "qty": 1}],
       "4": [{"material": "Opal", "qty": 2}]
     }},
    {"id": "piece-2", "name": "Piece Two", "slot": "Body", "setCategory": "Sets", "setName": "Alpha",
     "materialsByLevel": {
       "1": [{"material": "Opal", "qty": 3}],
       "2": [{"material": "Amber", "qty": 1}],
       "3": [{"material": "Amber", "qty": 2}],
       "4": [{"material": "Opal", "qty": 4}]
     }}
  ],
  "materials": [
    {"id": "mat-a", "name": "Amber", "category": "Gems"},
    {"id": "mat-b", "name": "Opal", "category": "Gems"}
  ]
}`
