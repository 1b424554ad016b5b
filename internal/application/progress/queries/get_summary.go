package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
)

// GetSummaryQuery asks for the overall progress figures.
type GetSummaryQuery struct {
	// TopLimit caps the remaining-materials list; 0 uses the default of 18.
	TopLimit int
}

// SummaryResponse is the dashboard view of progress
type SummaryResponse struct {
	requirements.Summary
	Game         string
	DeficitCount int
	TopRemaining []requirements.Cost
	Categories   []requirements.CategoryProgress
	LastUpdated  string
}

// GetSummaryHandler handles the GetSummary query
type GetSummaryHandler struct {
	session *session.Session
}

// NewGetSummaryHandler creates a new GetSummaryHandler
func NewGetSummaryHandler(sess *session.Session) *GetSummaryHandler {
	return &GetSummaryHandler{session: sess}
}

// Handle executes the GetSummary query
func (h *GetSummaryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSummaryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSummaryQuery")
	}

	limit := query.TopLimit
	if limit <= 0 {
		limit = requirements.TopRemainingLimit
	}

	d, s := h.session.Dataset, h.session.State
	summary := requirements.Counts(d, s)

	return &SummaryResponse{
		Summary:      summary,
		Game:         d.Game,
		DeficitCount: requirements.DeficitCount(s, summary.RemainingReq),
		TopRemaining: requirements.TopRemaining(d, summary.RemainingReq, limit),
		Categories:   requirements.ProgressByCategory(d, s),
		LastUpdated:  s.LastUpdated,
	}, nil
}
