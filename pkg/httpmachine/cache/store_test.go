package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest runs the Store contract against any implementation.
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()

	lm := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)

	// Missing key
	_, err := store.Get("/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Put then Get
	require.NoError(t, store.Put("/a", Entry{ETag: "v1", LastModified: lm}))
	e, err := store.Get("/a")
	require.NoError(t, err)
	assert.Equal(t, "v1", e.ETag)
	assert.True(t, e.LastModified.Equal(lm))
	assert.False(t, e.StoredAt.IsZero())

	// Overwrite
	require.NoError(t, store.Put("/a", Entry{ETag: "v2"}))
	e, err = store.Get("/a")
	require.NoError(t, err)
	assert.Equal(t, "v2", e.ETag)
	assert.True(t, e.LastModified.IsZero())

	// Delete is idempotent
	require.NoError(t, store.Delete("/a"))
	require.NoError(t, store.Delete("/a"))
	_, err = store.Get("/a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Clear
	require.NoError(t, store.Put("/b", Entry{ETag: "x"}))
	require.NoError(t, store.Put("/c", Entry{ETag: "y"}))
	require.NoError(t, store.Clear())
	_, err = store.Get("/b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	storeUnderTest(t, store)
}

func TestMemoryStore_Closed(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Put("/a", Entry{}), ErrStoreClosed)
	_, err := store.Get("/a")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "validators.db"))
	require.NoError(t, err)
	defer store.Close()
	storeUnderTest(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validators.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("/a", Entry{ETag: "v1"}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	e, err := reopened.Get("/a")
	require.NoError(t, err)
	assert.Equal(t, "v1", e.ETag)
}

func TestSQLiteStore_Closed(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Put("/a", Entry{}), ErrStoreClosed)
}

func TestNoopStore(t *testing.T) {
	store := NoopStore{}
	require.NoError(t, store.Put("/a", Entry{ETag: "v1"}))
	_, err := store.Get("/a")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Close())
}
