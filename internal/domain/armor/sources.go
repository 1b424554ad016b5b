package armor

import (
	"encoding/json"
	"fmt"
)

// PieceSource is where-to-find metadata for an armor piece.
type PieceSource struct {
	Regions []string `json:"regions,omitempty"`
	Where   string   `json:"where,omitempty"`
	Coords  string   `json:"coords,omitempty"`
	URL     string   `json:"url,omitempty"`
}

// MaterialSource is acquisition metadata for a material.
type MaterialSource struct {
	Where    string `json:"where,omitempty"`
	Location string `json:"location,omitempty"`
	Coords   string `json:"coords,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Sources is the companion document merged into a dataset by id.
type Sources struct {
	Armor     map[string]PieceSource    `json:"armor"`
	Materials map[string]MaterialSource `json:"materials"`
}

// ParseSources decodes a sources document.
func ParseSources(raw []byte) (*Sources, error) {
	var s Sources
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}
	return &s, nil
}

// ApplySources attaches source metadata to pieces and materials with matching ids.
// Entries for unknown ids are ignored.
func (d *Dataset) ApplySources(s *Sources) {
	if d == nil || s == nil {
		return
	}
	for i := range d.ArmorPieces {
		if src, ok := s.Armor[d.ArmorPieces[i].ID]; ok {
			src := src
			d.ArmorPieces[i].Source = &src
		}
	}
	for i := range d.Materials {
		if src, ok := s.Materials[d.Materials[i].ID]; ok {
			src := src
			d.Materials[i].Source = &src
		}
	}
}

// Acquisition returns the human-readable where/coords/notes text for a material.
func (m Material) Acquisition() (where, coords, notes string) {
	if m.Source == nil {
		return "", "", ""
	}
	where = m.Source.Where
	if where == "" {
		where = m.Source.Location
	}
	return where, m.Source.Coords, m.Source.Notes
}
