package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	database, err := OpenDB(filepath.Join(t.TempDir(), "nested", "zenban.db"))
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"auth_session", "board_cache"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestOpenDB_SingleSessionRow(t *testing.T) {
	database, err := OpenDB(filepath.Join(t.TempDir(), "zenban.db"))
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO auth_session (id, access, refresh, updated_at) VALUES (1, 'a', 'r', 'now')`)
	require.NoError(t, err)

	// The CHECK constraint pins the table to one row.
	_, err = database.Exec(`INSERT INTO auth_session (id, access, refresh, updated_at) VALUES (2, 'a', 'r', 'now')`)
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, Migrate(database))
}
