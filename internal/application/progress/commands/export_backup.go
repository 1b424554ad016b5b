package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/backup"
)

// ExportBackupCommand produces a backup of the current dataset and state.
type ExportBackupCommand struct{}

// ExportBackupResponse carries the backup document and a suggested file name
type ExportBackupResponse struct {
	FileName string
	Content  []byte
}

// ExportBackupHandler handles the ExportBackup command
type ExportBackupHandler struct {
	session *session.Session
}

// NewExportBackupHandler creates a new ExportBackupHandler
func NewExportBackupHandler(sess *session.Session) *ExportBackupHandler {
	return &ExportBackupHandler{session: sess}
}

// Handle executes the ExportBackup command. The state is persisted first so
// the exported lastUpdated matches what is stored.
func (h *ExportBackupHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ExportBackupCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportBackupCommand")
	}

	h.session.Persist(ctx)

	content, err := backup.Encode(h.session.Dataset, h.session.State)
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	name := fmt.Sprintf("armor-tracker-backup-%s-%s.json",
		h.session.Clock().Now().UTC().Format("20060102"),
		uuid.NewString()[:8])
	return &ExportBackupResponse{FileName: name, Content: content}, nil
}
