package setup

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"golang.org/x/text/language"

	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/progress/commands"
	"github.com/andrescamacho/armor-tracker/internal/application/progress/queries"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/backup"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	session *session.Session
	codec   *backup.Codec
	locale  language.Tag
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(sess *session.Session, codec *backup.Codec, locale language.Tag) *HandlerRegistry {
	if codec == nil {
		codec = backup.NewCodec(backup.Options{Clock: sess.Clock()})
	}
	return &HandlerRegistry{session: sess, codec: codec, locale: locale}
}

// RegisterProgressHandlers registers all progress command and query handlers with the mediator
func (r *HandlerRegistry) RegisterProgressHandlers(m mediator.Mediator) error {
	inventory := commands.NewSetInventoryHandler(r.session)
	armorQueries := queries.NewArmorHandler(r.session)

	registrations := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		{&commands.SetLevelCommand{}, commands.NewSetLevelHandler(r.session)},
		{&commands.SetInventoryCommand{}, inventory},
		{&commands.AdjustInventoryCommand{}, inventory},
		{&commands.QuickUpgradeCommand{}, commands.NewQuickUpgradeHandler(r.session)},
		{&commands.ResetProgressCommand{}, commands.NewResetProgressHandler(r.session)},
		{&commands.ImportBackupCommand{}, commands.NewImportBackupHandler(r.session, r.codec)},
		{&commands.ExportBackupCommand{}, commands.NewExportBackupHandler(r.session)},
		{&commands.UpdateUIPrefsCommand{}, commands.NewUpdateUIPrefsHandler(r.session)},
		{&queries.GetSummaryQuery{}, queries.NewGetSummaryHandler(r.session)},
		{&queries.ListMaterialsQuery{}, queries.NewListMaterialsHandler(r.session, r.locale)},
		{&queries.ListReadyUpgradesQuery{}, queries.NewListReadyUpgradesHandler(r.session)},
		{&queries.ListArmorQuery{}, armorQueries},
		{&queries.GetPieceQuery{}, armorQueries},
	}
	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// CreateConfiguredMediator creates a new mediator with request logging and
// all progress handlers registered
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()
	m.RegisterMiddleware(LoggingMiddleware)

	if err := r.RegisterProgressHandlers(m); err != nil {
		return nil, fmt.Errorf("failed to register progress handlers: %w", err)
	}
	return m, nil
}

// LoggingMiddleware logs each request at debug level with its duration.
func LoggingMiddleware(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
	logger := common.LoggerFromContext(ctx)
	requestType := reflect.TypeOf(request)
	if requestType.Kind() == reflect.Pointer {
		requestType = requestType.Elem()
	}
	name := requestType.Name()
	start := time.Now()

	resp, err := next(ctx, request)
	if err != nil {
		logger.Debug("request failed", "request", name, "duration", time.Since(start), "error", err)
		return nil, err
	}
	logger.Debug("request handled", "request", name, "duration", time.Since(start))
	return resp, nil
}
