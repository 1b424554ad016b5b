package requirements

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
)

// Filter selects and orders the materials list.
type Filter struct {
	DeficitsOnly bool
	Search       string
	Sort         string
	Locale       language.Tag
}

// MaterialRow is one line of the materials list.
type MaterialRow struct {
	Material  armor.Material
	Remaining int
	Inventory int
	// Diff is inventory minus remaining; negative means a deficit.
	Diff   int
	Needed int
}

// MaterialRows computes remaining, held and missing quantities for every
// material, applies the filter and sorts. Unknown sort orders sort by amount needed.
func MaterialRows(d *armor.Dataset, s *progress.State, f Filter) []MaterialRow {
	if d == nil || s == nil {
		return nil
	}
	remaining := SumRemainingRequirements(d, s)
	query := strings.ToLower(strings.TrimSpace(f.Search))

	rows := make([]MaterialRow, 0, len(d.Materials))
	for _, m := range d.Materials {
		rem := remaining[m.ID]
		inv := s.Held(m.ID)
		row := MaterialRow{
			Material:  m,
			Remaining: rem,
			Inventory: inv,
			Diff:      inv - rem,
			Needed:    max(0, rem-inv),
		}
		if f.DeficitsOnly && row.Needed <= 0 {
			continue
		}
		if query != "" && !strings.Contains(searchText(m), query) {
			continue
		}
		rows = append(rows, row)
	}

	col := collate.New(f.Locale, collate.IgnoreCase)
	byName := func(a, b MaterialRow) int {
		return col.CompareString(a.Material.Name, b.Material.Name)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch f.Sort {
		case progress.SortAlpha:
			return byName(a, b) < 0
		case progress.SortCategory:
			if c := col.CompareString(a.Material.Category, b.Material.Category); c != 0 {
				return c < 0
			}
			return byName(a, b) < 0
		default:
			if a.Needed != b.Needed {
				return a.Needed > b.Needed
			}
			return byName(a, b) < 0
		}
	})
	return rows
}

func searchText(m armor.Material) string {
	parts := append([]string{}, m.Tags...)
	parts = append(parts, m.Name)
	where, coords, notes := m.Acquisition()
	for _, p := range []string{where, coords, notes} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
