package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/armor-tracker/internal/adapters/persistence"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory SQLite database closed at test cleanup
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// NewTestDocumentStore returns a document repository over a fresh test
// database, stamping rows with FixedTime.
func NewTestDocumentStore(t *testing.T) *persistence.GormDocumentRepository {
	t.Helper()
	return persistence.NewGormDocumentRepository(NewTestDB(t), shared.NewMockClock(FixedTime))
}
