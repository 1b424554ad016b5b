package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// CurrentSchemaVersion is the schema version written for every state document.
const CurrentSchemaVersion = 2

// LegacySchemaVersion marks checkbox-style documents that need migration.
const LegacySchemaVersion = 1

// State is the player's mutable progress: a level per armor piece and a
// count per material, keyed by dataset ids.
type State struct {
	SchemaVersion int            `json:"schemaVersion"`
	Levels        map[string]int `json:"levels"`
	Inventory     map[string]int `json:"inventory"`
	UI            UIPrefs        `json:"ui"`
	LastUpdated   string         `json:"lastUpdated"`
}

// DefaultState builds a zeroed state keyed from the dataset's piece and material ids.
func DefaultState(d *armor.Dataset, now time.Time) *State {
	s := &State{
		SchemaVersion: CurrentSchemaVersion,
		Levels:        make(map[string]int),
		Inventory:     make(map[string]int),
		UI:            DefaultUIPrefs(),
		LastUpdated:   shared.FormatTimestamp(now),
	}
	if d == nil {
		return s
	}
	for _, p := range d.ArmorPieces {
		s.Levels[p.ID] = 0
	}
	for _, m := range d.Materials {
		s.Inventory[m.ID] = 0
	}
	return s
}

// EnsureStateAligned inserts a zero entry for every piece and material id the
// state does not know yet and initializes the UI collections. Entries for ids
// missing from the dataset are left untouched. Calling it twice changes nothing.
func EnsureStateAligned(d *armor.Dataset, s *State) {
	if s == nil {
		return
	}
	if s.Levels == nil {
		s.Levels = make(map[string]int)
	}
	if s.Inventory == nil {
		s.Inventory = make(map[string]int)
	}
	if d != nil {
		for _, p := range d.ArmorPieces {
			if _, ok := s.Levels[p.ID]; !ok {
				s.Levels[p.ID] = 0
			}
		}
		for _, m := range d.Materials {
			if _, ok := s.Inventory[m.ID]; !ok {
				s.Inventory[m.ID] = 0
			}
		}
	}
	s.UI.ensure()
}

// EnsureMaterialsView normalizes the materials list preferences. An unknown
// sort, or a category sort on a dataset without material categories, falls
// back to sorting by amount needed.
func EnsureMaterialsView(d *armor.Dataset, s *State) *MaterialsView {
	s.UI.ensure()
	view := s.UI.Materials
	hasCategories := d != nil && d.HasCategories()
	switch {
	case view.Sort == SortCategory && !hasCategories:
		view.Sort = SortNeeded
	case view.Sort != SortNeeded && view.Sort != SortAlpha && view.Sort != SortCategory:
		view.Sort = SortNeeded
	}
	return view
}

// Level returns the clamped level recorded for a piece, 0 when absent.
func (s *State) Level(pieceID string) int {
	return shared.ClampLevel(s.Levels[pieceID])
}

// Held returns the inventory count for a material, 0 when absent.
func (s *State) Held(materialID string) int {
	return s.Inventory[materialID]
}

// Touch stamps the state with the persist time.
func (s *State) Touch(now time.Time) {
	s.LastUpdated = shared.FormatTimestamp(now)
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	out := *s
	out.Levels = make(map[string]int, len(s.Levels))
	for k, v := range s.Levels {
		out.Levels[k] = v
	}
	out.Inventory = make(map[string]int, len(s.Inventory))
	for k, v := range s.Inventory {
		out.Inventory[k] = v
	}
	out.UI = s.UI.Recognized()
	out.UI.extra = s.UI.extra
	return &out
}

// Marshal encodes the state as a persisted document.
func (s *State) Marshal() ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return raw, nil
}
