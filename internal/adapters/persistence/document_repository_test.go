package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/adapters/persistence"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/domain/storage"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

func TestDocumentRepository_PutAndGet(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDocumentRepository(db, shared.NewMockClock(helpers.FixedTime))
	ctx := context.Background()

	// Act
	err := repo.Put(ctx, storage.StateKey, []byte(`{"schemaVersion":2}`))
	require.NoError(t, err)
	body, err := repo.Get(ctx, storage.StateKey)

	// Assert
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":2}`, string(body))
}

func TestDocumentRepository_PutOverwrites(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDocumentRepository(db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, storage.DataKey, []byte(`{"v":1}`)))
	require.NoError(t, repo.Put(ctx, storage.DataKey, []byte(`{"v":2}`)))

	body, err := repo.Get(ctx, storage.DataKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(body))

	var count int64
	db.Model(&persistence.DocumentModel{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDocumentRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDocumentRepository(db, nil)

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocumentRepository_Delete(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDocumentRepository(db, nil)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, storage.StateKey, []byte(`{}`)))

	require.NoError(t, repo.Delete(ctx, storage.StateKey))
	require.NoError(t, repo.Delete(ctx, storage.StateKey))

	_, err := repo.Get(ctx, storage.StateKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
