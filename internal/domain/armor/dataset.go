package armor

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// SchemaVersion is the only dataset format this tracker understands.
const SchemaVersion = 1

// UnsortedGroup is the grouping bucket for pieces without a set category or set name.
const UnsortedGroup = "Unsorted"

// Dataset is the immutable description of every armor piece and material for one game.
type Dataset struct {
	SchemaVersion int          `json:"schemaVersion"`
	Game          string       `json:"game,omitempty"`
	ArmorPieces   []ArmorPiece `json:"armorPieces"`
	Materials     []Material   `json:"materials"`
}

// ArmorPiece is one equippable item with up to four upgrade levels.
// MaterialsByLevel is keyed by the level as a decimal string ("1".."4").
type ArmorPiece struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Slot             string                   `json:"slot,omitempty"`
	SetCategory      string                   `json:"setCategory,omitempty"`
	SetName          string                   `json:"setName,omitempty"`
	Effect           string                   `json:"effect,omitempty"`
	Description      string                   `json:"description,omitempty"`
	MaterialsByLevel map[string][]Requirement `json:"materialsByLevel,omitempty"`

	Source *PieceSource `json:"-"`
}

// Material is a countable crafting resource. Name is the join key used by requirements.
type Material struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	Source *MaterialSource `json:"-"`
}

// Category returns the set category, or the fallback bucket.
func (p ArmorPiece) Category() string {
	if s := strings.TrimSpace(p.SetCategory); s != "" {
		return s
	}
	return UnsortedGroup
}

// Set returns the set name, or the fallback bucket.
func (p ArmorPiece) Set() string {
	if s := strings.TrimSpace(p.SetName); s != "" {
		return s
	}
	return UnsortedGroup
}

// Levels returns the numeric level keys of the upgrade table in ascending order.
// Keys that do not read as numbers are left out.
func (p ArmorPiece) Levels() []int {
	levels := make([]int, 0, len(p.MaterialsByLevel))
	for key := range p.MaterialsByLevel {
		if lvl, ok := ParseLevelKey(key); ok {
			levels = append(levels, lvl)
		}
	}
	sort.Ints(levels)
	return levels
}

// ParseLevelKey reads an upgrade table key. Fractional keys are truncated,
// matching how level comparisons treat them.
func ParseLevelKey(key string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Max(math.Min(f, math.MaxInt32), math.MinInt32)
	return int(f), true
}

// Parse decodes a dataset document. Decoding does not imply validity; callers
// gate on ValidateData.
func Parse(raw []byte) (*Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return &d, nil
}

// ValidateData reports whether d is a structurally usable dataset:
// supported schema version and both collections present.
func ValidateData(d *Dataset) bool {
	return d != nil &&
		d.SchemaVersion == SchemaVersion &&
		d.ArmorPieces != nil &&
		d.Materials != nil
}

// MaterialIDsByName builds the display-name to id lookup. It is rebuilt on
// every call so renamed materials never resolve through stale ids.
func (d *Dataset) MaterialIDsByName() map[string]string {
	lookup := make(map[string]string, len(d.Materials))
	for _, m := range d.Materials {
		if _, seen := lookup[m.Name]; !seen {
			lookup[m.Name] = m.ID
		}
	}
	return lookup
}

// Piece returns the armor piece with the given id.
func (d *Dataset) Piece(id string) (*ArmorPiece, bool) {
	for i := range d.ArmorPieces {
		if d.ArmorPieces[i].ID == id {
			return &d.ArmorPieces[i], true
		}
	}
	return nil, false
}

// Material returns the material with the given id.
func (d *Dataset) Material(id string) (*Material, bool) {
	for i := range d.Materials {
		if d.Materials[i].ID == id {
			return &d.Materials[i], true
		}
	}
	return nil, false
}

// PieceIDs lists every armor piece id in dataset order.
func (d *Dataset) PieceIDs() []string {
	ids := make([]string, len(d.ArmorPieces))
	for i, p := range d.ArmorPieces {
		ids[i] = p.ID
	}
	return ids
}

// MaterialIDs lists every material id in dataset order.
func (d *Dataset) MaterialIDs() []string {
	ids := make([]string, len(d.Materials))
	for i, m := range d.Materials {
		ids[i] = m.ID
	}
	return ids
}

// HasCategories reports whether any material carries a category.
func (d *Dataset) HasCategories() bool {
	for _, m := range d.Materials {
		if strings.TrimSpace(m.Category) != "" {
			return true
		}
	}
	return false
}

// TotalLevels is the number of upgrade levels across every piece.
func (d *Dataset) TotalLevels() int {
	return len(d.ArmorPieces) * 4
}
