package progress

import (
	"strconv"
	"time"

	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// MigrateOldStateIfNeeded upgrades a legacy checkbox document to the current
// schema. It applies only when the document is schema 1, carries upgrades and
// has no levels. A piece's level is the length of the unbroken run of checked
// flags starting at "1"; a checked level 3 under an unchecked level 2 does not
// count. Everything else is returned unchanged, including nil.
func MigrateOldStateIfNeeded(doc *Document, now time.Time) *Document {
	if doc == nil || !versionIs(doc.SchemaVersion, LegacySchemaVersion) || !truthy(doc.Upgrades) || truthy(doc.Levels) {
		return doc
	}

	levels := make(map[string]any)
	if upgrades, ok := asObject(doc.Upgrades); ok {
		for pieceID, flags := range upgrades {
			checked, _ := flags.(map[string]any)
			lvl := 0
			for i := 1; i <= shared.MaxLevel; i++ {
				if !truthy(checked[strconv.Itoa(i)]) {
					break
				}
				lvl = i
			}
			levels[pieceID] = lvl
		}
	}

	migrated := &Document{
		SchemaVersion: CurrentSchemaVersion,
		Levels:        levels,
		Inventory:     doc.Inventory,
		UI:            doc.UI,
		LastUpdated:   doc.LastUpdated,
	}
	if !truthy(migrated.Inventory) {
		migrated.Inventory = map[string]any{}
	}
	if !truthy(migrated.UI) {
		migrated.UI = map[string]any{"openCats": []any{}, "openPieces": []any{}}
	}
	if !truthy(migrated.LastUpdated) {
		migrated.LastUpdated = shared.FormatTimestamp(now)
	}
	return migrated
}
