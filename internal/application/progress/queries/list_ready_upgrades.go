package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
)

// ListReadyUpgradesQuery asks which pieces can be upgraded right now.
type ListReadyUpgradesQuery struct{}

// ListReadyUpgradesHandler handles the ListReadyUpgrades query
type ListReadyUpgradesHandler struct {
	session *session.Session
}

// NewListReadyUpgradesHandler creates a new ListReadyUpgradesHandler
func NewListReadyUpgradesHandler(sess *session.Session) *ListReadyUpgradesHandler {
	return &ListReadyUpgradesHandler{session: sess}
}

// Handle executes the ListReadyUpgrades query
func (h *ListReadyUpgradesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListReadyUpgradesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListReadyUpgradesQuery")
	}
	return requirements.ReadyUpgrades(h.session.Dataset, h.session.State), nil
}
