package queries

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/requirements"
)

// ListMaterialsQuery asks for the materials list. Nil fields fall back to
// the saved view preferences.
type ListMaterialsQuery struct {
	DeficitsOnly *bool
	Sort         *string
	Search       string
}

// ListMaterialsHandler handles the ListMaterials query
type ListMaterialsHandler struct {
	session *session.Session
	locale  language.Tag
}

// NewListMaterialsHandler creates a new ListMaterialsHandler collating names for locale
func NewListMaterialsHandler(sess *session.Session, locale language.Tag) *ListMaterialsHandler {
	return &ListMaterialsHandler{session: sess, locale: locale}
}

// Handle executes the ListMaterials query
func (h *ListMaterialsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListMaterialsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListMaterialsQuery")
	}

	view := *progress.EnsureMaterialsView(h.session.Dataset, h.session.State)
	if query.DeficitsOnly != nil {
		view.DeficitsOnly = *query.DeficitsOnly
	}
	if query.Sort != nil {
		view.Sort = *query.Sort
	}

	return requirements.MaterialRows(h.session.Dataset, h.session.State, requirements.Filter{
		DeficitsOnly: view.DeficitsOnly,
		Search:       query.Search,
		Sort:         view.Sort,
		Locale:       h.locale,
	}), nil
}
