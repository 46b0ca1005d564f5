package repository

import (
	"context"

	"github.com/Masterminds/squirrel"

	"local-file-manager/internal/model"
)

const actionLogsTable = "action_logs"

// JournalStore persists operation records. Implementations assign ids in
// strictly increasing order.
type JournalStore interface {
	Insert(ctx context.Context, rec model.OperationRecord) (int64, error)
	// LatestUndoCandidate returns the newest SUCCESS record whose kind is
	// reversible or UNDO.
	LatestUndoCandidate(ctx context.Context) (model.OperationRecord, bool, error)
	// FindByBatch returns the SUCCESS members of a batch, oldest first.
	FindByBatch(ctx context.Context, batchID string) ([]model.OperationRecord, error)
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]model.OperationRecord, error)
}

var recordColumns = []string{
	"id",
	"occurred_at",
	"action",
	"COALESCE(src_path, '') AS src_path",
	"COALESCE(dst_path, '') AS dst_path",
	"status",
	"COALESCE(message, '') AS message",
	"COALESCE(batch_id, '') AS batch_id",
	"COALESCE(trash_slot, '') AS trash_slot",
}

var insertColumns = []string{
	"occurred_at",
	"action",
	"src_path",
	"dst_path",
	"status",
	"message",
	"batch_id",
	"trash_slot",
}

var undoCandidateKinds = []string{
	string(model.OpMove),
	string(model.OpRename),
	string(model.OpCreateDir),
	string(model.OpDelete),
	string(model.OpUndo),
}

func latestUndoCandidateQuery(builder squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return builder.
		Select(recordColumns...).
		From(actionLogsTable).
		Where(squirrel.Eq{"status": string(model.StatusSuccess), "action": undoCandidateKinds}).
		OrderBy("id DESC").
		Limit(1)
}

func findByBatchQuery(builder squirrel.StatementBuilderType, batchID string) squirrel.SelectBuilder {
	return builder.
		Select(recordColumns...).
		From(actionLogsTable).
		Where(squirrel.Eq{"batch_id": batchID, "status": string(model.StatusSuccess)}).
		OrderBy("id ASC")
}

func recentQuery(builder squirrel.StatementBuilderType, limit int) squirrel.SelectBuilder {
	return builder.
		Select(recordColumns...).
		From(actionLogsTable).
		OrderBy("id DESC").
		Limit(uint64(limit))
}

// nullable maps the empty string to SQL NULL.
func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
