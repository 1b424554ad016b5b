package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
)

// ListArmorQuery asks for every piece with its level, optionally limited to
// one set category.
type ListArmorQuery struct {
	Category string
}

// ArmorRow is one piece in the armor list
type ArmorRow struct {
	Piece armor.ArmorPiece
	Level int
	// Ready is true when the next level is affordable.
	Ready bool
}

// GetPieceQuery asks for one piece's upgrade table.
type GetPieceQuery struct {
	PieceID string
}

// PieceResponse is a piece with the status of each of its levels
type PieceResponse struct {
	Piece  armor.ArmorPiece
	Level  int
	Levels []requirements.LevelStatus
}

// ArmorHandler handles the ListArmor and GetPiece queries
type ArmorHandler struct {
	session *session.Session
}

// NewArmorHandler creates a new ArmorHandler
func NewArmorHandler(sess *session.Session) *ArmorHandler {
	return &ArmorHandler{session: sess}
}

// Handle executes the ListArmor or GetPiece query
func (h *ArmorHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch query := request.(type) {
	case *ListArmorQuery:
		return h.list(query), nil
	case *GetPieceQuery:
		resp, err := h.piece(query)
		if err != nil {
			return nil, err
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("invalid request type: expected *ListArmorQuery or *GetPieceQuery")
	}
}

func (h *ArmorHandler) list(query *ListArmorQuery) []ArmorRow {
	d, s := h.session.Dataset, h.session.State

	ready := make(map[string]bool)
	for _, r := range requirements.ReadyUpgrades(d, s) {
		ready[r.PieceID] = true
	}

	var rows []ArmorRow
	for _, p := range d.ArmorPieces {
		if query.Category != "" && !strings.EqualFold(p.Category(), query.Category) {
			continue
		}
		rows = append(rows, ArmorRow{Piece: p, Level: s.Level(p.ID), Ready: ready[p.ID]})
	}
	return rows
}

func (h *ArmorHandler) piece(query *GetPieceQuery) (*PieceResponse, error) {
	piece, err := h.session.ResolvePiece(query.PieceID)
	if err != nil {
		return nil, err
	}
	return &PieceResponse{
		Piece:  *piece,
		Level:  h.session.State.Level(piece.ID),
		Levels: requirements.PieceLevels(h.session.Dataset, h.session.State, piece.ID),
	}, nil
}
