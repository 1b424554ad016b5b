package backup

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

func (c *Codec) validateDataset(raw any) (*armor.Dataset, error) {
	data, ok := raw.(map[string]any)
	if !ok || data == nil || !isNumber(data["schemaVersion"], armor.SchemaVersion) {
		return nil, newError(KindInvalidDataset)
	}
	pieces, piecesOK := data["armorPieces"].([]any)
	materials, materialsOK := data["materials"].([]any)
	if !piecesOK || !materialsOK {
		return nil, newError(KindInvalidDataset)
	}

	if err := c.validateMaterials(materials); err != nil {
		return nil, err
	}
	if err := c.validateArmorPieces(pieces); err != nil {
		return nil, err
	}
	if err := checkReferences(pieces, materials); err != nil {
		return nil, err
	}

	// Numbers were kept verbatim while decoding; pin the version so a
	// value like 1.0 still fits the typed field.
	data["schemaVersion"] = armor.SchemaVersion
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, newError(KindInvalidDataset).wrap(err)
	}
	dataset, err := armor.Parse(encoded)
	if err != nil || !armor.ValidateData(dataset) {
		return nil, newError(KindInvalidDataset).wrap(err)
	}
	return dataset, nil
}

func (c *Codec) validateMaterials(materials []any) error {
	if len(materials) == 0 || len(materials) > MaxMaterials {
		return newError(KindInvalidMaterials)
	}
	seen := make(map[string]struct{}, len(materials))
	for _, item := range materials {
		m, ok := item.(map[string]any)
		if !ok || m == nil {
			return newError(KindInvalidMaterials)
		}
		id, idOK := c.safeString(m["id"])
		_, nameOK := c.safeString(m["name"])
		if !idOK || !nameOK {
			return newError(KindInvalidMaterials)
		}
		if _, dup := seen[id]; dup {
			return newError(KindDuplicateMaterials).withDetail(fmt.Sprintf("(%s)", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (c *Codec) validateArmorPieces(pieces []any) error {
	if len(pieces) == 0 || len(pieces) > MaxArmorPieces {
		return newError(KindInvalidArmor)
	}
	seen := make(map[string]struct{}, len(pieces))
	for _, item := range pieces {
		p, ok := item.(map[string]any)
		if !ok || p == nil {
			return newError(KindInvalidArmor)
		}
		id, idOK := c.safeString(p["id"])
		_, nameOK := c.safeString(p["name"])
		if !idOK || !nameOK {
			return newError(KindInvalidArmor)
		}
		if _, dup := seen[id]; dup {
			return newError(KindDuplicateArmor).withDetail(fmt.Sprintf("(%s)", id))
		}
		seen[id] = struct{}{}

		if err := c.validateLevels(p["materialsByLevel"]); err != nil {
			return err.withDetail(fmt.Sprintf("(%s)", id))
		}
	}
	return nil
}

func (c *Codec) validateLevels(raw any) *Error {
	levels, ok := raw.(map[string]any)
	if !ok || levels == nil {
		return newError(KindInvalidLevels)
	}
	for key, value := range levels {
		if !isLevelKey(key) {
			return newError(KindInvalidLevels)
		}
		items, ok := value.([]any)
		if !ok || len(items) > MaxMaterialsPerLevel {
			return newError(KindInvalidLevels)
		}
		for _, entry := range items {
			req, ok := entry.(map[string]any)
			if !ok || req == nil {
				return newError(KindInvalidLevels)
			}
			if _, ok := c.safeString(req["material"]); !ok {
				return newError(KindInvalidLevels)
			}
			if shared.ClampInt(req["qty"]) <= 0 {
				return newError(KindInvalidLevels)
			}
		}
	}
	return nil
}

func checkReferences(pieces, materials []any) error {
	known := make(map[string]struct{}, len(materials))
	names := make([]string, 0, len(materials))
	for _, item := range materials {
		name := item.(map[string]any)["name"].(string)
		known[name] = struct{}{}
		names = append(names, name)
	}

	for _, item := range pieces {
		levels := item.(map[string]any)["materialsByLevel"].(map[string]any)
		for _, key := range sortedKeys(levels) {
			for _, entry := range levels[key].([]any) {
				name := entry.(map[string]any)["material"].(string)
				if _, ok := known[name]; ok {
					continue
				}
				detail := fmt.Sprintf("(%q)", name)
				if suggestion := shared.Suggest(name, names); suggestion != "" {
					detail = fmt.Sprintf("(%q, did you mean %q?)", name, suggestion)
				}
				return newError(KindUnknownMaterials).withDetail(detail)
			}
		}
	}
	return nil
}

func (c *Codec) sanitizeState(d *armor.Dataset, raw any) (*progress.State, error) {
	now := c.clock.Now()
	var doc *progress.Document
	if m, ok := raw.(map[string]any); ok {
		doc = progress.DocumentFromMap(m)
	}
	migrated := progress.MigrateOldStateIfNeeded(doc, now)
	if !migrated.IsCurrent() {
		return nil, newError(KindUnsupportedVersion)
	}

	state := progress.DefaultState(d, now)
	state.UI = migrated.UIPrefs().Recognized()
	if ts, ok := c.safeString(migrated.LastUpdated); ok {
		if _, valid := shared.ParseTimestamp(ts); valid {
			state.LastUpdated = ts
		}
	}

	levels := migrated.LevelValues()
	for _, p := range d.ArmorPieces {
		state.Levels[p.ID] = shared.ClampLevel(levels[p.ID])
	}
	inventory := migrated.InventoryValues()
	for _, m := range d.Materials {
		state.Inventory[m.ID] = shared.ClampInt(inventory[m.ID])
	}

	progress.EnsureStateAligned(d, state)
	progress.EnsureMaterialsView(d, state)
	return state, nil
}

// safeString accepts non-empty strings of at most MaxStringLength characters.
func (c *Codec) safeString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	if err := c.validate.Var(s, fmt.Sprintf("required,max=%d", MaxStringLength)); err != nil {
		return "", false
	}
	return s, true
}

func isNumber(v any, want int) bool {
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	f, err := n.Float64()
	return err == nil && f == float64(want)
}

// isLevelKey accepts keys that read as a whole number from 1 to MaxLevel;
// "1.0" passes, "1.5" does not.
func isLevelKey(key string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil || f != math.Trunc(f) {
		return false
	}
	return f >= 1 && f <= shared.MaxLevel
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
