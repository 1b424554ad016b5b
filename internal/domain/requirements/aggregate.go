package requirements

import (
	"sort"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// TopRemainingLimit is how many materials the summary lists.
const TopRemainingLimit = 18

// Summary is the read-only progress overview.
type Summary struct {
	RemainingReq    map[string]int
	CompletedLevels int
	TotalLevels     int
}

// RemainingLevels is the number of upgrade levels still to buy.
func (s Summary) RemainingLevels() int {
	return max(0, s.TotalLevels-s.CompletedLevels)
}

// Percent is the completed share of all levels, 0 for an empty dataset.
func (s Summary) Percent() float64 {
	if s.TotalLevels == 0 {
		return 0
	}
	return float64(s.CompletedLevels) * 100 / float64(s.TotalLevels)
}

// Cost is a resolved quantity of one material.
type Cost struct {
	MaterialID string
	Qty        int
}

// SumRemainingRequirements totals, per material id, the cost of every level
// above each piece's current level. Requirement names that do not resolve to
// a material are skipped, as are level keys that are not numbers.
func SumRemainingRequirements(d *armor.Dataset, s *progress.State) map[string]int {
	remaining := make(map[string]int)
	if d == nil || s == nil {
		return remaining
	}

	nameToID := d.MaterialIDsByName()
	for _, p := range d.ArmorPieces {
		current := shared.ClampInt(s.Levels[p.ID])
		for key, items := range p.MaterialsByLevel {
			lvl, ok := armor.ParseLevelKey(key)
			if !ok || lvl <= current {
				continue
			}
			for _, item := range items {
				id, ok := nameToID[item.Material]
				if !ok || item.Qty <= 0 {
					continue
				}
				remaining[id] += item.Qty
			}
		}
	}
	return remaining
}

// Counts derives the summary numbers. Completed levels are summed over the
// dataset's pieces so orphaned state entries cannot push it past the total.
func Counts(d *armor.Dataset, s *progress.State) Summary {
	summary := Summary{RemainingReq: SumRemainingRequirements(d, s)}
	if d == nil {
		return summary
	}
	summary.TotalLevels = d.TotalLevels()
	if s == nil {
		return summary
	}
	for _, p := range d.ArmorPieces {
		summary.CompletedLevels += s.Level(p.ID)
	}
	return summary
}

// DeficitCount is the number of materials whose inventory is below what remains.
func DeficitCount(s *progress.State, remaining map[string]int) int {
	count := 0
	for id, qty := range remaining {
		if s.Held(id) < qty {
			count++
		}
	}
	return count
}

// TopRemaining lists the largest remaining requirements, largest first.
// Ties keep dataset material order.
func TopRemaining(d *armor.Dataset, remaining map[string]int, limit int) []Cost {
	costs := make([]Cost, 0, len(remaining))
	for _, m := range d.Materials {
		if qty, ok := remaining[m.ID]; ok {
			costs = append(costs, Cost{MaterialID: m.ID, Qty: qty})
		}
	}
	sort.SliceStable(costs, func(i, j int) bool {
		return costs[i].Qty > costs[j].Qty
	})
	if limit > 0 && len(costs) > limit {
		costs = costs[:limit]
	}
	return costs
}

// CategoryProgress is the level tally of one set category.
type CategoryProgress struct {
	Category  string
	Pieces    int
	Completed int
	Total     int
}

// ProgressByCategory groups pieces by set category in first-seen order.
func ProgressByCategory(d *armor.Dataset, s *progress.State) []CategoryProgress {
	var out []CategoryProgress
	index := make(map[string]int)
	for _, p := range d.ArmorPieces {
		cat := p.Category()
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, CategoryProgress{Category: cat})
		}
		out[i].Pieces++
		out[i].Completed += s.Level(p.ID)
		out[i].Total += shared.MaxLevel
	}
	return out
}
