package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenConfiguresSingleWriter(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "cenik.sqlite3"))
	require.NoError(t, err)
	defer database.Close()

	assert.Equal(t, 1, database.Stats().MaxOpenConnections)

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "cenik.sqlite3"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))

	var n int
	err = database.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'kv'`).Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMigrateRunsMigrationsInOrder(t *testing.T) {
	saved := migrations
	t.Cleanup(func() { migrations = saved })
	migrations = []string{
		`CREATE INDEX IF NOT EXISTS idx_kv_updated_at ON kv (updated_at)`,
		`DROP INDEX IF EXISTS idx_kv_updated_at`,
	}

	database := NewTestDB(t)
	require.NoError(t, Migrate(database))

	var n int
	err := database.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_kv_updated_at'`).Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMigrateReportsFailingMigration(t *testing.T) {
	saved := migrations
	t.Cleanup(func() { migrations = saved })
	migrations = []string{`SELECT 1`, `NOT SQL`}

	err := Migrate(NewTestDB(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running migration 2")
}
