package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// QuickUpgradeCommand pays for a piece's next level out of inventory.
// Target defaults to the level after the current one.
type QuickUpgradeCommand struct {
	PieceID string
	Target  int
}

// QuickUpgradeResponse lists what was deducted
type QuickUpgradeResponse struct {
	PieceID string
	Level   int
	Paid    []requirements.Cost
}

// QuickUpgradeHandler handles the QuickUpgrade command
type QuickUpgradeHandler struct {
	session *session.Session
}

// NewQuickUpgradeHandler creates a new QuickUpgradeHandler
func NewQuickUpgradeHandler(sess *session.Session) *QuickUpgradeHandler {
	return &QuickUpgradeHandler{session: sess}
}

// Handle executes the QuickUpgrade command. Nothing changes when the upgrade
// cannot be fully paid for.
func (h *QuickUpgradeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*QuickUpgradeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *QuickUpgradeCommand")
	}

	piece, err := h.session.ResolvePiece(cmd.PieceID)
	if err != nil {
		return nil, err
	}

	target := cmd.Target
	if target == 0 {
		target = h.session.State.Level(piece.ID) + 1
	}

	costs := requirements.LevelRequirements(h.session.Dataset, piece.ID, target)
	if !requirements.QuickUpgrade(h.session.Dataset, h.session.State, piece.ID, target) {
		return nil, &shared.UpgradeBlockedError{PieceID: piece.ID, Target: target}
	}
	h.session.Persist(ctx)

	common.LoggerFromContext(ctx).Info("armor upgraded", "piece", piece.ID, "level", target)

	return &QuickUpgradeResponse{PieceID: piece.ID, Level: target, Paid: costs}, nil
}
