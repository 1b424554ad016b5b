package session

import (
	"strings"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// ResolvePiece finds a piece by id, or by display name ignoring case.
func (s *Session) ResolvePiece(ref string) (*armor.ArmorPiece, error) {
	ref = strings.TrimSpace(ref)
	if p, ok := s.Dataset.Piece(ref); ok {
		return p, nil
	}
	candidates := s.Dataset.PieceIDs()
	for i := range s.Dataset.ArmorPieces {
		p := &s.Dataset.ArmorPieces[i]
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
		candidates = append(candidates, p.Name)
	}
	return nil, shared.NewNotFoundError("armor piece", ref, shared.Suggest(ref, candidates))
}

// ResolveMaterial finds a material by id, or by display name ignoring case.
func (s *Session) ResolveMaterial(ref string) (*armor.Material, error) {
	ref = strings.TrimSpace(ref)
	if m, ok := s.Dataset.Material(ref); ok {
		return m, nil
	}
	candidates := s.Dataset.MaterialIDs()
	for i := range s.Dataset.Materials {
		m := &s.Dataset.Materials[i]
		if strings.EqualFold(m.Name, ref) {
			return m, nil
		}
		candidates = append(candidates, m.Name)
	}
	return nil, shared.NewNotFoundError("material", ref, shared.Suggest(ref, candidates))
}
