package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"local-file-manager/internal/model"
)

// sqliteRecord mirrors an action_logs row; SQLite keeps timestamps as text.
type sqliteRecord struct {
	ID         int64  `db:"id"`
	OccurredAt string `db:"occurred_at"`
	Action     string `db:"action"`
	SrcPath    string `db:"src_path"`
	DstPath    string `db:"dst_path"`
	Status     string `db:"status"`
	Message    string `db:"message"`
	BatchID    string `db:"batch_id"`
	TrashSlot  string `db:"trash_slot"`
}

func (r sqliteRecord) toModel() (model.OperationRecord, error) {
	occurredAt, err := time.Parse(time.RFC3339Nano, r.OccurredAt)
	if err != nil {
		return model.OperationRecord{}, fmt.Errorf("parse occurred_at of record %d: %w", r.ID, err)
	}

	return model.OperationRecord{
		ID:        r.ID,
		Timestamp: occurredAt,
		Kind:      model.OperationKind(r.Action),
		SrcPath:   r.SrcPath,
		DstPath:   r.DstPath,
		Status:    model.OperationStatus(r.Status),
		Message:   r.Message,
		BatchID:   r.BatchID,
		TrashSlot: r.TrashSlot,
	}, nil
}

type SQLiteJournalRepository struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
}

func NewSQLiteJournalRepository(db *sql.DB) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (r *SQLiteJournalRepository) Insert(ctx context.Context, rec model.OperationRecord) (int64, error) {
	query, args, err := r.builder.
		Insert(actionLogsTable).
		Columns(insertColumns...).
		Values(
			rec.Timestamp.UTC().Format(time.RFC3339Nano),
			string(rec.Kind),
			nullable(rec.SrcPath),
			nullable(rec.DstPath),
			string(rec.Status),
			nullable(rec.Message),
			nullable(rec.BatchID),
			nullable(rec.TrashSlot),
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert action log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	return id, nil
}

func (r *SQLiteJournalRepository) LatestUndoCandidate(ctx context.Context) (model.OperationRecord, bool, error) {
	query, args, err := latestUndoCandidateQuery(r.builder).ToSql()
	if err != nil {
		return model.OperationRecord{}, false, fmt.Errorf("build undo candidate query: %w", err)
	}

	var row sqliteRecord
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return model.OperationRecord{}, false, nil
		}
		return model.OperationRecord{}, false, fmt.Errorf("find undo candidate: %w", err)
	}

	rec, err := row.toModel()
	if err != nil {
		return model.OperationRecord{}, false, err
	}

	return rec, true, nil
}

func (r *SQLiteJournalRepository) FindByBatch(ctx context.Context, batchID string) ([]model.OperationRecord, error) {
	query, args, err := findByBatchQuery(r.builder, batchID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batch query: %w", err)
	}

	return r.selectRecords(ctx, "find batch", query, args)
}

func (r *SQLiteJournalRepository) Recent(ctx context.Context, limit int) ([]model.OperationRecord, error) {
	query, args, err := recentQuery(r.builder, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent query: %w", err)
	}

	return r.selectRecords(ctx, "list recent", query, args)
}

func (r *SQLiteJournalRepository) selectRecords(ctx context.Context, op string, query string, args []any) ([]model.OperationRecord, error) {
	var rows []sqliteRecord
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := make([]model.OperationRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
