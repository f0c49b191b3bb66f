package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := openTestStore(t)

	assert.Equal(t, DatabaseFile, filepath.Base(store.Path()))
	assert.FileExists(t, store.Path())

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsSchema(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	version, err := second.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_CreatesNestedDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, dir)
}

func TestNewStore_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := NewStore(filepath.Join(file, "data"))
	assert.Error(t, err)
}

func TestMigrateUp_IsIdempotent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, migrateUp(store.db))
	require.NoError(t, migrateUp(store.db))

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestSchemaVersion_Dirty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.db.Exec("UPDATE schema_migrations SET dirty = 1")
	require.NoError(t, err)

	_, err = store.SchemaVersion()
	assert.ErrorContains(t, err, "dirty")
}

func TestRunsTableExists(t *testing.T) {
	store := openTestStore(t)

	var name string
	err := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'runs'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "runs", name)
}
