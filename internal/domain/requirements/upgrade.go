package requirements

import (
	"strconv"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// ReadyUpgrade is a piece whose next level is fully covered by inventory.
type ReadyUpgrade struct {
	PieceID string
	Level   int
	Costs   []Cost
}

// LevelStatus describes one level of a piece's upgrade table.
type LevelStatus struct {
	Level int
	Costs []Cost
	Done  bool
	Ready bool
}

// LevelRequirements resolves the cost of exactly one level of a piece.
// Names that do not resolve keep the raw name as id; lines with no positive
// quantity are dropped.
func LevelRequirements(d *armor.Dataset, pieceID string, level int) []Cost {
	if d == nil {
		return nil
	}
	p, ok := d.Piece(pieceID)
	if !ok {
		return nil
	}
	items := p.MaterialsByLevel[strconv.Itoa(level)]
	if len(items) == 0 {
		return nil
	}

	nameToID := d.MaterialIDsByName()
	costs := make([]Cost, 0, len(items))
	for _, item := range items {
		id, ok := nameToID[item.Material]
		if !ok {
			id = item.Material
		}
		if id == "" || item.Qty <= 0 {
			continue
		}
		costs = append(costs, Cost{MaterialID: id, Qty: item.Qty})
	}
	return costs
}

// Covered reports whether inventory holds at least every cost.
func Covered(s *progress.State, costs []Cost) bool {
	for _, c := range costs {
		if s.Held(c.MaterialID) < c.Qty {
			return false
		}
	}
	return true
}

// ReadyUpgrades lists, in dataset order, every piece below max level whose
// next level has costs and all of them are covered.
func ReadyUpgrades(d *armor.Dataset, s *progress.State) []ReadyUpgrade {
	var ready []ReadyUpgrade
	if d == nil || s == nil {
		return ready
	}
	for _, p := range d.ArmorPieces {
		current := s.Level(p.ID)
		if current >= shared.MaxLevel {
			continue
		}
		next := current + 1
		costs := LevelRequirements(d, p.ID, next)
		if len(costs) == 0 || !Covered(s, costs) {
			continue
		}
		ready = append(ready, ReadyUpgrade{PieceID: p.ID, Level: next, Costs: costs})
	}
	return ready
}

// PieceLevels reports the done and ready flags of every level in a piece's table.
func PieceLevels(d *armor.Dataset, s *progress.State, pieceID string) []LevelStatus {
	p, ok := d.Piece(pieceID)
	if !ok {
		return nil
	}
	current := s.Level(pieceID)
	levels := p.Levels()
	out := make([]LevelStatus, 0, len(levels))
	for _, lvl := range levels {
		costs := LevelRequirements(d, pieceID, lvl)
		done := current >= lvl
		out = append(out, LevelStatus{
			Level: lvl,
			Costs: costs,
			Done:  done,
			Ready: !done && len(costs) > 0 && Covered(s, costs),
		})
	}
	return out
}

// QuickUpgrade pays for exactly the target level and sets the piece to it.
// It returns false and leaves the state untouched when the target is not
// above the current level, the level has no costs, or any cost is short.
func QuickUpgrade(d *armor.Dataset, s *progress.State, pieceID string, target int) bool {
	if s == nil {
		return false
	}
	costs := LevelRequirements(d, pieceID, target)
	if len(costs) == 0 {
		return false
	}
	if target <= shared.ClampInt(s.Levels[pieceID]) {
		return false
	}
	if !Covered(s, costs) {
		return false
	}

	if s.Inventory == nil {
		s.Inventory = make(map[string]int)
	}
	for _, c := range costs {
		s.Inventory[c.MaterialID] = max(0, s.Inventory[c.MaterialID]-c.Qty)
	}
	if s.Levels == nil {
		s.Levels = make(map[string]int)
	}
	s.Levels[pieceID] = target
	return true
}
