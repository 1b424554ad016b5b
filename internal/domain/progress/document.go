package progress

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// Document is the loosely typed form of a persisted or imported state.
// Every field keeps whatever JSON value it was given so that legacy and
// hostile documents decode without failing; interpretation happens in
// MigrateOldStateIfNeeded and ToState.
type Document struct {
	SchemaVersion any `json:"schemaVersion,omitempty"`
	Levels        any `json:"levels,omitempty"`
	Upgrades      any `json:"upgrades,omitempty"`
	Inventory     any `json:"inventory,omitempty"`
	UI            any `json:"ui,omitempty"`
	LastUpdated   any `json:"lastUpdated,omitempty"`
}

// ParseDocument decodes raw JSON into a Document. A JSON null yields (nil, nil);
// anything that is not an object is an error.
func ParseDocument(raw []byte) (*Document, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("state document is %T, not an object", v)
	}
	return DocumentFromMap(m), nil
}

// DocumentFromMap picks the state fields out of an already decoded object.
func DocumentFromMap(m map[string]any) *Document {
	if m == nil {
		return nil
	}
	return &Document{
		SchemaVersion: m["schemaVersion"],
		Levels:        m["levels"],
		Upgrades:      m["upgrades"],
		Inventory:     m["inventory"],
		UI:            m["ui"],
		LastUpdated:   m["lastUpdated"],
	}
}

// IsCurrent reports whether the document claims the current schema version.
func (d *Document) IsCurrent() bool {
	return d != nil && versionIs(d.SchemaVersion, CurrentSchemaVersion)
}

// ToState converts a current-schema document into a State. Levels are
// clamped to [0, 4] and counts to [0, 99999]; non-numeric values become 0.
// A document that is not current, or whose levels or inventory are not
// objects, is rejected.
func (d *Document) ToState() (*State, bool) {
	if !d.IsCurrent() {
		return nil, false
	}
	levels, ok := asObject(d.Levels)
	if !ok {
		return nil, false
	}
	inventory, ok := asObject(d.Inventory)
	if d.Inventory != nil && !ok {
		return nil, false
	}

	s := &State{
		SchemaVersion: CurrentSchemaVersion,
		Levels:        make(map[string]int, len(levels)),
		Inventory:     make(map[string]int, len(inventory)),
		UI:            d.UIPrefs(),
	}
	for id, v := range levels {
		s.Levels[id] = shared.ClampLevel(v)
	}
	for id, v := range inventory {
		s.Inventory[id] = shared.ClampInt(v)
	}
	if ts, ok := d.LastUpdated.(string); ok {
		s.LastUpdated = ts
	}
	return s, true
}

// UIPrefs decodes the ui sub-document, falling back to defaults when it is
// missing or not an object.
func (d *Document) UIPrefs() UIPrefs {
	if _, ok := asObject(d.UI); !ok {
		return DefaultUIPrefs()
	}
	raw, err := json.Marshal(d.UI)
	if err != nil {
		return DefaultUIPrefs()
	}
	var prefs UIPrefs
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return DefaultUIPrefs()
	}
	prefs.ensure()
	return prefs
}

// LevelValues returns the raw levels object, or nil when it is not an object.
func (d *Document) LevelValues() map[string]any {
	m, _ := asObject(d.Levels)
	return m
}

// InventoryValues returns the raw inventory object, or nil when it is not an object.
func (d *Document) InventoryValues() map[string]any {
	m, _ := asObject(d.Inventory)
	return m
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func versionIs(v any, want int) bool {
	switch n := v.(type) {
	case int:
		return n == want
	case float64:
		return n == float64(want)
	case json.Number:
		f, err := n.Float64()
		return err == nil && f == float64(want)
	default:
		return false
	}
}

// truthy follows the loose truthiness of the documents' original writer:
// false, 0, "", null and NaN are false, everything else is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case string:
		return x != ""
	default:
		return true
	}
}
