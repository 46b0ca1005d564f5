package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAppliesMigrations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "journal.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var columns int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info('action_logs')`).Scan(&columns)
	require.NoError(t, err)
	require.Equal(t, 9, columns)

	require.NoError(t, MigrateSQLite(ctx, db), "re-running migrations is a no-op")
}
