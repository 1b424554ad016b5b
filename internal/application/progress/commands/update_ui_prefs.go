package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// UpdateUIPrefsCommand changes view preferences. Nil and empty fields are left alone.
type UpdateUIPrefsCommand struct {
	ToggleCategory string
	TogglePiece    string
	ShowAllLevels  *bool
	ActiveTab      *string
	DeficitsOnly   *bool
	Sort           *string
	Scroll         map[string]float64
}

// UpdateUIPrefsHandler handles the UpdateUIPrefs command
type UpdateUIPrefsHandler struct {
	session *session.Session
}

// NewUpdateUIPrefsHandler creates a new UpdateUIPrefsHandler
func NewUpdateUIPrefsHandler(sess *session.Session) *UpdateUIPrefsHandler {
	return &UpdateUIPrefsHandler{session: sess}
}

// Handle executes the UpdateUIPrefs command and returns the resulting preferences
func (h *UpdateUIPrefsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateUIPrefsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateUIPrefsCommand")
	}

	if cmd.Sort != nil && !slices.Contains(progress.MaterialSorts, *cmd.Sort) {
		return nil, shared.NewValidationError("sort",
			fmt.Sprintf("must be one of %s", strings.Join(progress.MaterialSorts, ", ")))
	}
	pieceID := ""
	if cmd.TogglePiece != "" {
		piece, err := h.session.ResolvePiece(cmd.TogglePiece)
		if err != nil {
			return nil, err
		}
		pieceID = piece.ID
	}

	state := h.session.State
	progress.EnsureStateAligned(h.session.Dataset, state)
	ui := &state.UI

	if cmd.ToggleCategory != "" {
		ui.OpenCats = progress.Toggle(ui.OpenCats, cmd.ToggleCategory)
	}
	if pieceID != "" {
		ui.OpenPieces = progress.Toggle(ui.OpenPieces, pieceID)
	}
	if cmd.ShowAllLevels != nil {
		ui.ShowAllLevels = *cmd.ShowAllLevels
	}
	if cmd.ActiveTab != nil {
		ui.ActiveTab = *cmd.ActiveTab
	}
	if cmd.DeficitsOnly != nil {
		ui.Materials.DeficitsOnly = *cmd.DeficitsOnly
	}
	if cmd.Sort != nil {
		ui.Materials.Sort = *cmd.Sort
	}
	for key, pos := range cmd.Scroll {
		ui.Scroll[key] = pos
	}
	progress.EnsureMaterialsView(h.session.Dataset, state)

	h.session.Persist(ctx)
	return ui.Recognized(), nil
}
