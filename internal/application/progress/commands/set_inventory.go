package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// SetInventoryCommand records how many units of a material are held.
// Quantity accepts anything ClampInt does.
type SetInventoryCommand struct {
	MaterialID string
	Quantity   any
}

// AdjustInventoryCommand adds Delta units, flooring the result at zero.
type AdjustInventoryCommand struct {
	MaterialID string
	Delta      int
}

// InventoryResponse reports the stored quantity
type InventoryResponse struct {
	MaterialID string
	Previous   int
	Quantity   int
}

// SetInventoryHandler handles SetInventory and AdjustInventory commands
type SetInventoryHandler struct {
	session *session.Session
}

// NewSetInventoryHandler creates a new SetInventoryHandler
func NewSetInventoryHandler(sess *session.Session) *SetInventoryHandler {
	return &SetInventoryHandler{session: sess}
}

// Handle executes the SetInventory or AdjustInventory command
func (h *SetInventoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var ref string
	var next func(current int) int

	switch cmd := request.(type) {
	case *SetInventoryCommand:
		ref = cmd.MaterialID
		next = func(int) int { return shared.ClampInt(cmd.Quantity) }
	case *AdjustInventoryCommand:
		ref = cmd.MaterialID
		next = func(current int) int { return shared.ClampInt(current + cmd.Delta) }
	default:
		return nil, fmt.Errorf("invalid request type: expected *SetInventoryCommand or *AdjustInventoryCommand")
	}

	mat, err := h.session.ResolveMaterial(ref)
	if err != nil {
		return nil, err
	}

	previous := h.session.State.Held(mat.ID)
	qty := next(previous)
	h.session.State.Inventory[mat.ID] = qty
	h.session.Persist(ctx)

	return &InventoryResponse{MaterialID: mat.ID, Previous: previous, Quantity: qty}, nil
}
