package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
)

// ResetProgressCommand discards all levels, inventory and view preferences.
// The dataset is kept.
type ResetProgressCommand struct{}

// ResetProgressHandler handles the ResetProgress command
type ResetProgressHandler struct {
	session *session.Session
}

// NewResetProgressHandler creates a new ResetProgressHandler
func NewResetProgressHandler(sess *session.Session) *ResetProgressHandler {
	return &ResetProgressHandler{session: sess}
}

// Handle executes the ResetProgress command
func (h *ResetProgressHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ResetProgressCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResetProgressCommand")
	}
	h.session.Reset(ctx)
	common.LoggerFromContext(ctx).Info("progress reset")
	return nil, nil
}
