package setup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/application/setup"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
	"github.com/andrescamacho/armor-tracker/internal/domain/storage"
	"github.com/andrescamacho/armor-tracker/test/helpers"
)

type stubFetcher struct {
	body  []byte
	err   error
	calls int
}

func (f *stubFetcher) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.body, f.err
}

func newLoader(store storage.DocumentStore, fetcher setup.Fetcher, opts setup.LoaderOptions) *setup.Loader {
	return setup.NewLoader(store, fetcher, shared.NewMockClock(helpers.FixedTime), opts)
}

func TestLoadArmorData_PrefersPersistedCopy(t *testing.T) {
	// Arrange
	store := helpers.NewMemoryDocumentStore()
	store.Seed(storage.DataKey, helpers.SampleDatasetJSON)
	fetcher := &stubFetcher{err: errors.New("offline")}
	loader := newLoader(store, fetcher, setup.LoaderOptions{URL: "https://example.test/data.json"})

	// Act
	d, err := loader.LoadArmorData(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"piece-1", "piece-2"}, d.PieceIDs())
	assert.Equal(t, 0, fetcher.calls)
	assert.Equal(t, 0, store.PutCount(storage.DataKey))
}

func TestLoadArmorData_InvalidPersistedCopyFallsBackToRemote(t *testing.T) {
	// Arrange
	store := helpers.NewMemoryDocumentStore()
	store.Seed(storage.DataKey, `{"schemaVersion":2,"armorPieces":[],"materials":[]}`)
	fetcher := &stubFetcher{body: []byte(helpers.SampleDatasetJSON)}
	loader := newLoader(store, fetcher, setup.LoaderOptions{URL: "https://example.test/data.json"})

	// Act
	d, err := loader.LoadArmorData(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.Len(t, d.ArmorPieces, 2)
	raw, ok := store.Raw(storage.DataKey)
	require.True(t, ok)
	assert.Contains(t, raw, `"piece-1"`)
}

func TestLoadArmorData_RemoteFailureFallsBackToBundled(t *testing.T) {
	store := helpers.NewMemoryDocumentStore()
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	loader := newLoader(store, fetcher, setup.LoaderOptions{URL: "https://example.test/data.json"})

	d, err := loader.LoadArmorData(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Breath of the Wild", d.Game)
	assert.NotEmpty(t, d.ArmorPieces)
	assert.Equal(t, 1, store.PutCount(storage.DataKey))
}

func TestLoadArmorData_InvalidRemoteIsNotPersisted(t *testing.T) {
	store := helpers.NewMemoryDocumentStore()
	fetcher := &stubFetcher{body: []byte(`{"schemaVersion":1}`)}
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(helpers.SampleDatasetJSON), 0o600))
	loader := newLoader(store, fetcher, setup.LoaderOptions{URL: "https://example.test/data.json", BundledPath: path})

	d, err := loader.LoadArmorData(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"piece-1", "piece-2"}, d.PieceIDs())
	raw, _ := store.Raw(storage.DataKey)
	assert.Contains(t, raw, `"piece-2"`)
}

func TestLoadArmorData_MergesSources(t *testing.T) {
	store := helpers.NewMemoryDocumentStore()
	store.Seed(storage.DataKey, helpers.SampleDatasetJSON)
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"armor":{"piece-1":{"where":"Hateno"}},"materials":{"mat-a":{"location":"Eldin"}}}`), 0o600))
	loader := newLoader(store, nil, setup.LoaderOptions{SourcesPath: path})

	d, err := loader.LoadArmorData(context.Background())

	require.NoError(t, err)
	p, _ := d.Piece("piece-1")
	require.NotNil(t, p.Source)
	assert.Equal(t, "Hateno", p.Source.Where)
	m, _ := d.Material("mat-a")
	where, _, _ := m.Acquisition()
	assert.Equal(t, "Eldin", where)
}

func TestLoadArmorData_MissingSourcesIsNotFatal(t *testing.T) {
	store := helpers.NewMemoryDocumentStore()
	store.Seed(storage.DataKey, helpers.SampleDatasetJSON)
	loader := newLoader(store, nil, setup.LoaderOptions{SourcesPath: filepath.Join(t.TempDir(), "missing.json")})

	_, err := loader.LoadArmorData(context.Background())

	assert.NoError(t, err)
}

func TestLoadArmorData_NothingValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schemaVersion":7}`), 0o600))
	loader := newLoader(helpers.NewMemoryDocumentStore(), nil, setup.LoaderOptions{BundledPath: path})

	_, err := loader.LoadArmorData(context.Background())

	assert.ErrorIs(t, err, setup.ErrNoDataset)
}

func TestInitializeState_MigratesLegacyDocument(t *testing.T) {
	// Arrange
	store := helpers.NewMemoryDocumentStore()
	store.Seed(storage.StateKey, `{"schemaVersion":1,"upgrades":{"piece-1":{"1":true,"2":true,"3":false,"4":true}},"inventory":{"mat-a":"12"}}`)
	loader := newLoader(store, nil, setup.LoaderOptions{})

	// Act
	s := loader.InitializeState(context.Background(), helpers.SampleDataset())

	// Assert
	assert.Equal(t, progress.CurrentSchemaVersion, s.SchemaVersion)
	assert.Equal(t, 2, s.Levels["piece-1"])
	assert.Equal(t, 0, s.Levels["piece-2"])
	assert.Equal(t, 12, s.Inventory["mat-a"])
	assert.Equal(t, 0, s.Inventory["mat-b"])
	assert.Equal(t, 1, store.PutCount(storage.StateKey))
}

func TestInitializeState_GarbageFallsBackToDefault(t *testing.T) {
	for _, raw := range []string{`not json`, `[]`, `null`, `{"schemaVersion":3,"levels":{}}`} {
		store := helpers.NewMemoryDocumentStore()
		store.Seed(storage.StateKey, raw)

		s := newLoader(store, nil, setup.LoaderOptions{}).InitializeState(context.Background(), helpers.SampleDataset())

		assert.Equal(t, map[string]int{"piece-1": 0, "piece-2": 0}, s.Levels, raw)
		assert.Equal(t, "2024-03-01T09:30:00.000Z", s.LastUpdated, raw)
	}
}

func TestInitializeState_KeepsOrphansAndClamps(t *testing.T) {
	store := helpers.NewMemoryDocumentStore()
	store.Seed(storage.StateKey, `{"schemaVersion":2,"levels":{"piece-1":9,"retired":3},"inventory":{"mat-b":-4}}`)

	s := newLoader(store, nil, setup.LoaderOptions{}).InitializeState(context.Background(), helpers.SampleDataset())

	assert.Equal(t, 4, s.Levels["piece-1"])
	assert.Equal(t, 3, s.Levels["retired"])
	assert.Equal(t, 0, s.Inventory["mat-b"])
}

func TestOpen_ReadFailureStillYieldsSession(t *testing.T) {
	store := helpers.NewMemoryDocumentStore()
	store.FailReads("storage disabled")

	sess, err := newLoader(store, nil, setup.LoaderOptions{}).Open(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, sess.Dataset.ArmorPieces)
	assert.Len(t, sess.State.Levels, len(sess.Dataset.ArmorPieces))
}

func TestOpen_ProgressSurvivesReopenOnDatabase(t *testing.T) {
	// Arrange
	store := helpers.NewTestDocumentStore(t)
	ctx := context.Background()
	first, err := newLoader(store, nil, setup.LoaderOptions{}).Open(ctx)
	require.NoError(t, err)
	first.State.Levels["hylian-hood"] = 3
	first.State.Inventory["mat-amber"] = 11
	first.Persist(ctx)

	// Act
	second, err := newLoader(store, nil, setup.LoaderOptions{}).Open(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, first.Dataset.PieceIDs(), second.Dataset.PieceIDs())
	assert.Equal(t, 3, second.State.Level("hylian-hood"))
	assert.Equal(t, 11, second.State.Held("mat-amber"))
}
