package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"local-file-manager/internal/database"
	"local-file-manager/internal/model"
)

func newSQLiteRepository(t *testing.T) *SQLiteJournalRepository {
	t.Helper()

	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLiteJournalRepository(db)
}

func TestSQLiteJournalRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newSQLiteRepository(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := repo.Insert(ctx, model.OperationRecord{
		Timestamp: now, Kind: model.OpDelete, SrcPath: "/data/a.txt",
		Status: model.StatusSuccess, BatchID: "b1", TrashSlot: "20240101_000000",
	})
	require.NoError(t, err)

	second, err := repo.Insert(ctx, model.OperationRecord{
		Timestamp: now, Kind: model.OpDelete, SrcPath: "/data/b.txt",
		Status: model.StatusFailure, Message: "source not found", BatchID: "b1",
	})
	require.NoError(t, err)
	require.Greater(t, second, first)

	_, err = repo.Insert(ctx, model.OperationRecord{Timestamp: now, Kind: model.OpListDir, SrcPath: "/data", Status: model.StatusSuccess})
	require.NoError(t, err)

	candidate, found, err := repo.LatestUndoCandidate(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, first, candidate.ID)
	require.Equal(t, "20240101_000000", candidate.TrashSlot)
	require.Equal(t, "", candidate.DstPath)
	require.True(t, candidate.Timestamp.Equal(now))

	members, err := repo.FindByBatch(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, members, 1, "failed members are excluded")

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, model.OpListDir, recent[0].Kind)
	require.Equal(t, model.StatusFailure, recent[1].Status)
}

func TestSQLiteJournalRepository_EmptyJournal(t *testing.T) {
	t.Parallel()

	repo := newSQLiteRepository(t)

	_, found, err := repo.LatestUndoCandidate(context.Background())
	require.NoError(t, err)
	require.False(t, found)

	recent, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, recent)
}
