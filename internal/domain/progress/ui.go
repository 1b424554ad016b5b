package progress

import (
	"encoding/json"
	"slices"
)

// Material list sort orders.
const (
	SortNeeded   = "needed"
	SortAlpha    = "alpha"
	SortCategory = "category"
)

// MaterialSorts lists every accepted materials sort order.
var MaterialSorts = []string{SortNeeded, SortAlpha, SortCategory}

// MaterialsView holds the materials list filter and sort preferences.
type MaterialsView struct {
	DeficitsOnly bool   `json:"deficitsOnly"`
	Sort         string `json:"sort"`
}

// UIPrefs are view preferences. They carry no meaning for the progress
// calculations but must survive a save and reload, including keys this
// version does not know about.
type UIPrefs struct {
	OpenCats      []string           `json:"openCats"`
	OpenPieces    []string           `json:"openPieces"`
	ShowAllLevels bool               `json:"showAllLevels,omitempty"`
	ActiveTab     string             `json:"activeTab,omitempty"`
	Materials     *MaterialsView     `json:"materials,omitempty"`
	Scroll        map[string]float64 `json:"scroll,omitempty"`

	extra map[string]json.RawMessage
}

var knownUIKeys = []string{"openCats", "openPieces", "showAllLevels", "activeTab", "materials", "scroll"}

// DefaultUIPrefs returns preferences with every collection initialized.
func DefaultUIPrefs() UIPrefs {
	return UIPrefs{
		OpenCats:   []string{},
		OpenPieces: []string{},
		Materials:  &MaterialsView{Sort: SortNeeded},
		Scroll:     map[string]float64{},
	}
}

// UnmarshalJSON decodes each known field on its own so a single malformed
// value falls back to its default instead of discarding the whole document.
func (u *UIPrefs) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*u = UIPrefs{}
	for key, raw := range fields {
		switch key {
		case "openCats":
			u.OpenCats = decodeStrings(raw)
		case "openPieces":
			u.OpenPieces = decodeStrings(raw)
		case "showAllLevels":
			var v any
			if json.Unmarshal(raw, &v) == nil {
				u.ShowAllLevels = truthy(v)
			}
		case "activeTab":
			var s string
			if json.Unmarshal(raw, &s) == nil {
				u.ActiveTab = s
			}
		case "materials":
			u.Materials = decodeMaterialsView(raw)
		case "scroll":
			var scroll map[string]float64
			if json.Unmarshal(raw, &scroll) == nil {
				u.Scroll = scroll
			}
		default:
			if u.extra == nil {
				u.extra = make(map[string]json.RawMessage)
			}
			u.extra[key] = raw
		}
	}
	return nil
}

// MarshalJSON writes the known fields followed by any unrecognized keys read earlier.
func (u UIPrefs) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.extra)+len(knownUIKeys))
	for key, raw := range u.extra {
		out[key] = raw
	}

	out["openCats"] = nonNilStrings(u.OpenCats)
	out["openPieces"] = nonNilStrings(u.OpenPieces)
	if u.ShowAllLevels {
		out["showAllLevels"] = true
	}
	if u.ActiveTab != "" {
		out["activeTab"] = u.ActiveTab
	}
	if u.Materials != nil {
		out["materials"] = u.Materials
	}
	if len(u.Scroll) > 0 {
		out["scroll"] = u.Scroll
	}
	return json.Marshal(out)
}

// Extra returns the names of unrecognized keys carried along for round trips.
func (u UIPrefs) Extra() []string {
	keys := make([]string, 0, len(u.extra))
	for key := range u.extra {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Recognized returns a copy holding only the fields this version understands.
func (u UIPrefs) Recognized() UIPrefs {
	out := u
	out.extra = nil
	out.OpenCats = slices.Clone(u.OpenCats)
	out.OpenPieces = slices.Clone(u.OpenPieces)
	if u.Materials != nil {
		m := *u.Materials
		out.Materials = &m
	}
	if u.Scroll != nil {
		out.Scroll = make(map[string]float64, len(u.Scroll))
		for k, v := range u.Scroll {
			out.Scroll[k] = v
		}
	}
	return out
}

// Toggle adds value to list when absent and removes it when present.
func Toggle(list []string, value string) []string {
	if i := slices.Index(list, value); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return append(list, value)
}

func (u *UIPrefs) ensure() {
	if u.OpenCats == nil {
		u.OpenCats = []string{}
	}
	if u.OpenPieces == nil {
		u.OpenPieces = []string{}
	}
	if u.Materials == nil {
		u.Materials = &MaterialsView{Sort: SortNeeded}
	}
	if u.Scroll == nil {
		u.Scroll = map[string]float64{}
	}
}

func decodeStrings(raw json.RawMessage) []string {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func decodeMaterialsView(raw json.RawMessage) *MaterialsView {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}
	view := &MaterialsView{DeficitsOnly: truthy(fields["deficitsOnly"])}
	if s, ok := fields["sort"].(string); ok {
		view.Sort = s
	}
	return view
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
