package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/armor-tracker/internal/application/common"
	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
	"github.com/andrescamacho/armor-tracker/internal/application/session"
	"github.com/andrescamacho/armor-tracker/internal/domain/backup"
)

// ImportBackupCommand replaces the live dataset and state with a backup file.
type ImportBackupCommand struct {
	File *backup.File
}

// ImportBackupResponse summarizes what was imported
type ImportBackupResponse struct {
	Pieces    int
	Materials int
}

// ImportBackupHandler handles the ImportBackup command
type ImportBackupHandler struct {
	session *session.Session
	codec   *backup.Codec
}

// NewImportBackupHandler creates a new ImportBackupHandler
func NewImportBackupHandler(sess *session.Session, codec *backup.Codec) *ImportBackupHandler {
	return &ImportBackupHandler{session: sess, codec: codec}
}

// Handle executes the ImportBackup command. A rejected backup leaves the
// session untouched and returns the codec's *backup.Error.
func (h *ImportBackupHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportBackupCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportBackupCommand")
	}

	result, err := h.codec.ParseFile(ctx, cmd.File)
	if err != nil {
		return nil, err
	}

	h.session.Replace(ctx, result.Dataset, result.State)

	resp := &ImportBackupResponse{
		Pieces:    len(result.Dataset.ArmorPieces),
		Materials: len(result.Dataset.Materials),
	}
	common.LoggerFromContext(ctx).Info("backup imported",
		"file", cmd.File.Name, "pieces", resp.Pieces, "materials", resp.Materials)
	return resp, nil
}
