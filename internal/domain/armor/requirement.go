package armor

import (
	"encoding/json"

	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// Requirement is one line of an upgrade cost: a quantity of a material
// referenced by its display name.
type Requirement struct {
	Material string `json:"material"`
	Qty      int    `json:"qty"`
}

type requirementWire struct {
	Material *string `json:"material"`
	Name     *string `json:"name"`
	Qty      any     `json:"qty"`
	Quantity any     `json:"quantity"`
}

// UnmarshalJSON accepts both {material, qty} and the {name, quantity} aliases.
// Quantities go through ClampInt so a hand-edited dataset cannot carry
// negative or fractional costs.
func (r *Requirement) UnmarshalJSON(data []byte) error {
	var w requirementWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch {
	case w.Material != nil && *w.Material != "":
		r.Material = *w.Material
	case w.Name != nil:
		r.Material = *w.Name
	default:
		r.Material = ""
	}

	qty := w.Qty
	if qty == nil {
		qty = w.Quantity
	}
	r.Qty = shared.ClampInt(qty)
	return nil
}
