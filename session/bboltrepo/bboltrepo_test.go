package bboltrepo_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-shortlink-client/session/bboltrepo"
)

func newTestStore(t *testing.T) *bboltrepo.Store {
	t.Helper()
	store, err := bboltrepo.NewStoreFromFile(filepath.Join(t.TempDir(), "session.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("access-1", "refresh-1"))

	access, refresh, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "access-1", access)
	require.Equal(t, "refresh-1", refresh)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("A1", "R1"))
	require.NoError(t, store.Save("A2", "R2"))

	access, refresh, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "A2", access)
	require.Equal(t, "R2", refresh)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	access, refresh, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, access)
	require.Empty(t, refresh)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("A1", "R1"))
	require.NoError(t, store.Delete())

	access, refresh, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, access)
	require.Empty(t, refresh)

	// Deleting an already empty store is fine.
	require.NoError(t, store.Delete())
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := bboltrepo.NewStoreFromFile(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save("A1", "R1"))
	require.NoError(t, store.Close())

	reopened, err := bboltrepo.NewStoreFromFile(path, nil)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	access, refresh, err := reopened.Load()
	require.NoError(t, err)
	require.Equal(t, "A1", access)
	require.Equal(t, "R1", refresh)
}
