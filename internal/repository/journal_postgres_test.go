package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"

	"local-file-manager/internal/model"
)

var recordRowColumns = []string{
	"id", "occurred_at", "action", "src_path", "dst_path", "status", "message", "batch_id", "trash_slot",
}

func newMockRepository(t *testing.T) (*PostgresJournalRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresJournalRepository(mock), mock
}

func TestPostgresJournalRepository_Insert(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     model.OperationRecord
		setup   func(mock pgxmock.PgxPoolIface)
		wantID  int64
		wantErr bool
	}{
		{
			name: "move record with batch",
			rec: model.OperationRecord{
				Timestamp: now,
				Kind:      model.OpMove,
				SrcPath:   "/home/a.txt",
				DstPath:   "/home/dst",
				Status:    model.StatusSuccess,
				BatchID:   "batch-1",
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO action_logs`).
					WithArgs(now, "MOVE", "/home/a.txt", "/home/dst", "SUCCESS", nil, "batch-1", nil).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			wantID: 7,
		},
		{
			name: "undo record stores nulls",
			rec: model.OperationRecord{
				Timestamp: now,
				Kind:      model.OpUndo,
				Status:    model.StatusSuccess,
				Message:   "undid 2 item(s)",
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO action_logs`).
					WithArgs(now, "UNDO", nil, nil, "SUCCESS", "undid 2 item(s)", nil, nil).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))
			},
			wantID: 8,
		},
		{
			name: "database failure",
			rec:  model.OperationRecord{Timestamp: now, Kind: model.OpListDir, Status: model.StatusSuccess},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO action_logs`).
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
						pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setup(mock)

			id, err := repo.Insert(context.Background(), tt.rec)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, id)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresJournalRepository_LatestUndoCandidate(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("returns newest candidate", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`SELECT .* FROM action_logs WHERE .* ORDER BY id DESC LIMIT 1`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(recordRowColumns).
				AddRow(int64(12), now, "DELETE", "/home/a.txt", "", "SUCCESS", "", "batch-9", "20240501_120000"))

		rec, found, err := repo.LatestUndoCandidate(context.Background())
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, int64(12), rec.ID)
		require.Equal(t, model.OpDelete, rec.Kind)
		require.Equal(t, model.StatusSuccess, rec.Status)
		require.Equal(t, "batch-9", rec.BatchID)
		require.Equal(t, "20240501_120000", rec.TrashSlot)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty journal", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`SELECT .* FROM action_logs`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(recordRowColumns))

		_, found, err := repo.LatestUndoCandidate(context.Background())
		require.NoError(t, err)
		require.False(t, found)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresJournalRepository_FindByBatch(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM action_logs WHERE .* ORDER BY id ASC`).
		WithArgs("batch-1", "SUCCESS").
		WillReturnRows(pgxmock.NewRows(recordRowColumns).
			AddRow(int64(3), now, "MOVE", "/a/x", "/b", "SUCCESS", "", "batch-1", "").
			AddRow(int64(4), now, "MOVE", "/a/y", "/b", "SUCCESS", "", "batch-1", ""))

	records, err := repo.FindByBatch(context.Background(), "batch-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, int64(3), records[0].ID)
	require.Equal(t, "/a/y", records[1].SrcPath)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJournalRepository_Recent(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM action_logs ORDER BY id DESC LIMIT 2`).
		WillReturnRows(pgxmock.NewRows(recordRowColumns).
			AddRow(int64(9), now, "UNDO", "", "", "SUCCESS", "undid 1 item(s)", "", "").
			AddRow(int64(8), now, "RENAME", "/a/old", "/a/new", "SUCCESS", "", "", ""))

	records, err := repo.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, model.OpUndo, records[0].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}
