package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/domain/storage"
)

// GormDocumentRepository implements storage.DocumentStore using GORM
type GormDocumentRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormDocumentRepository creates a new GORM document repository
func NewGormDocumentRepository(db *gorm.DB, clock shared.Clock) *GormDocumentRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormDocumentRepository{db: db, clock: clock}
}

// Get retrieves the document stored under key
func (r *GormDocumentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var model DocumentModel
	result := r.db.WithContext(ctx).Where("doc_key = ?", key).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", key, result.Error)
	}
	return []byte(model.Body), nil
}

// Put stores body under key, replacing any previous document
func (r *GormDocumentRepository) Put(ctx context.Context, key string, body []byte) error {
	model := &DocumentModel{
		Key:       key,
		Body:      string(body),
		UpdatedAt: r.clock.Now(),
	}

	// Upsert: create or update
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save document %s: %w", key, result.Error)
	}
	return nil
}

// Delete removes the document stored under key. Deleting a missing key is not an error.
func (r *GormDocumentRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("doc_key = ?", key).Delete(&DocumentModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, result.Error)
	}
	return nil
}
