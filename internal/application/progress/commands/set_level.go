package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// SetLevelCommand records a piece's level directly, without paying for it.
// Level accepts anything ClampLevel does.
type SetLevelCommand struct {
	PieceID string
	Level   any
}

// SetLevelResponse reports the level change
type SetLevelResponse struct {
	PieceID  string
	Previous int
	Level    int
}

// SetLevelHandler handles the SetLevel command
type SetLevelHandler struct {
	session *session.Session
}

// NewSetLevelHandler creates a new SetLevelHandler
func NewSetLevelHandler(sess *session.Session) *SetLevelHandler {
	return &SetLevelHandler{session: sess}
}

// Handle executes the SetLevel command
func (h *SetLevelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetLevelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetLevelCommand")
	}

	piece, err := h.session.ResolvePiece(cmd.PieceID)
	if err != nil {
		return nil, err
	}

	previous := h.session.State.Level(piece.ID)
	level := shared.ClampLevel(cmd.Level)
	h.session.State.Levels[piece.ID] = level
	h.session.Persist(ctx)

	common.LoggerFromContext(ctx).Debug("level set", "piece", piece.ID, "from", previous, "to", level)

	return &SetLevelResponse{PieceID: piece.ID, Previous: previous, Level: level}, nil
}
