package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"local-file-manager/internal/model"
)

// Querier is satisfied by *pgxpool.Pool and by pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresJournalRepository struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

func NewPostgresJournalRepository(q Querier) *PostgresJournalRepository {
	return &PostgresJournalRepository{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresJournalRepository) Insert(ctx context.Context, rec model.OperationRecord) (int64, error) {
	query, args, err := r.builder.
		Insert(actionLogsTable).
		Columns(insertColumns...).
		Values(
			rec.Timestamp.UTC(),
			string(rec.Kind),
			nullable(rec.SrcPath),
			nullable(rec.DstPath),
			string(rec.Status),
			nullable(rec.Message),
			nullable(rec.BatchID),
			nullable(rec.TrashSlot),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert action log: %w", err)
	}

	return id, nil
}

func (r *PostgresJournalRepository) LatestUndoCandidate(ctx context.Context) (model.OperationRecord, bool, error) {
	query, args, err := latestUndoCandidateQuery(r.builder).ToSql()
	if err != nil {
		return model.OperationRecord{}, false, fmt.Errorf("build undo candidate query: %w", err)
	}

	rec, err := scanPostgresRecord(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.OperationRecord{}, false, nil
	}
	if err != nil {
		return model.OperationRecord{}, false, fmt.Errorf("find undo candidate: %w", err)
	}

	return rec, true, nil
}

func (r *PostgresJournalRepository) FindByBatch(ctx context.Context, batchID string) ([]model.OperationRecord, error) {
	query, args, err := findByBatchQuery(r.builder, batchID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batch query: %w", err)
	}

	return r.queryRecords(ctx, "find batch", query, args)
}

func (r *PostgresJournalRepository) Recent(ctx context.Context, limit int) ([]model.OperationRecord, error) {
	query, args, err := recentQuery(r.builder, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent query: %w", err)
	}

	return r.queryRecords(ctx, "list recent", query, args)
}

func (r *PostgresJournalRepository) queryRecords(ctx context.Context, op string, query string, args []any) ([]model.OperationRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	records := make([]model.OperationRecord, 0)
	for rows.Next() {
		rec, scanErr := scanPostgresRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, scanErr)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

func scanPostgresRecord(row pgx.Row) (model.OperationRecord, error) {
	var (
		rec        model.OperationRecord
		occurredAt time.Time
		action     string
		status     string
	)

	err := row.Scan(
		&rec.ID, &occurredAt, &action,
		&rec.SrcPath, &rec.DstPath, &status,
		&rec.Message, &rec.BatchID, &rec.TrashSlot,
	)
	if err != nil {
		return model.OperationRecord{}, err
	}

	rec.Timestamp = occurredAt.UTC()
	rec.Kind = model.OperationKind(action)
	rec.Status = model.OperationStatus(status)
	return rec, nil
}
