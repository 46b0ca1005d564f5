package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"local-file-manager/internal/model"
	"local-file-manager/internal/storage"
)

// UndoService reverses the most recent reversible batch in the journal.
type UndoService struct {
	journal *JournalService
	mover   *MoveService
	trash   *TrashService
	fs      storage.FS
}

func NewUndoService(journal *JournalService, mover *MoveService, trash *TrashService, fsys storage.FS) *UndoService {
	return &UndoService{journal: journal, mover: mover, trash: trash, fs: fsys}
}

// Undo reverses the newest reversible batch and journals an UNDO record.
// A MOVE batch where no member can be moved back returns UndoFailed rather
// than a result with zero items restored, and nothing is journaled, so the
// batch stays the undo candidate.
func (s *UndoService) Undo(ctx context.Context) (model.UndoResult, error) {
	batch, err := s.journal.MostRecentReversibleBatch(ctx)
	if err != nil {
		return model.UndoResult{}, err
	}
	if len(batch) == 0 {
		return model.UndoResult{}, model.UndoFailed("no action to undo")
	}

	kind := batch[0].Kind
	for _, member := range batch[1:] {
		if member.Kind != kind {
			return model.UndoResult{}, model.UndoFailed(fmt.Sprintf("batch mixes %s and %s records", kind, member.Kind))
		}
	}

	var restored int
	switch kind {
	case model.OpDelete:
		restored, err = s.undoDelete(ctx, batch)
	case model.OpRename:
		restored, err = s.undoRename(ctx, batch)
	case model.OpMove:
		restored, err = s.undoMove(ctx, batch)
	case model.OpCreateDir:
		restored, err = s.undoCreateDir(batch)
	default:
		err = model.UndoFailed(fmt.Sprintf("cannot undo %s", kind))
	}
	if err != nil {
		return model.UndoResult{}, err
	}

	message := fmt.Sprintf("undid %d item(s)", restored)
	if _, appendErr := s.journal.Append(ctx, model.OperationRecord{
		Kind:    model.OpUndo,
		Status:  model.StatusSuccess,
		Message: message,
	}); appendErr != nil {
		slog.Warn("failed to journal undo", "action", kind, "error", appendErr)
	}

	slog.Info("undo completed", "action", kind, "items_restored", restored, "batch_id", batch[0].BatchID)

	return model.UndoResult{
		Success:       true,
		Action:        kind,
		ItemsRestored: restored,
		Message:       message,
	}, nil
}

// undoDelete restores from the slot recorded on the batch. Records written
// before slots were journaled fall back to the newest slot.
func (s *UndoService) undoDelete(ctx context.Context, batch []model.OperationRecord) (int, error) {
	slotID := ""
	originals := make([]string, 0, len(batch))
	for _, member := range batch {
		if member.SrcPath == "" {
			return 0, model.UndoFailed(fmt.Sprintf("delete record %d has no source path", member.ID))
		}
		if slotID == "" {
			slotID = member.TrashSlot
		}
		originals = append(originals, member.SrcPath)
	}

	if slotID == "" {
		latest, found, err := s.trash.LatestSlot(ctx)
		if err != nil {
			return 0, undoFailedWith("locate trash slot", err)
		}
		if !found {
			return 0, model.UndoFailed("trash is empty")
		}
		slotID = latest
	}

	return s.trash.Restore(ctx, slotID, originals)
}

func (s *UndoService) undoRename(ctx context.Context, batch []model.OperationRecord) (int, error) {
	if len(batch) != 1 {
		return 0, model.UndoFailed(fmt.Sprintf("rename batch has %d records, expected 1", len(batch)))
	}

	rec := batch[0]
	originalName := filepath.Base(rec.SrcPath)
	if rec.SrcPath == "" || rec.DstPath == "" || originalName == "." || originalName == string(filepath.Separator) {
		return 0, model.UndoFailed(fmt.Sprintf("rename record %d is incomplete", rec.ID))
	}

	if _, err := s.mover.RenameItem(ctx, rec.DstPath, originalName); err != nil {
		return 0, undoFailedWith("rename back", err)
	}

	return 1, nil
}

// undoMove checks every member before touching anything, then moves each
// item back into its original parent. Partial success is allowed; zero
// successes is a failure.
func (s *UndoService) undoMove(ctx context.Context, batch []model.OperationRecord) (int, error) {
	type moveBack struct {
		current string
		parent  string
	}

	plan := make([]moveBack, 0, len(batch))
	for _, member := range batch {
		name := filepath.Base(member.SrcPath)
		if member.SrcPath == "" || member.DstPath == "" || name == "." || name == string(filepath.Separator) {
			return 0, model.UndoFailed(fmt.Sprintf("move record %d is incomplete", member.ID))
		}
		plan = append(plan, moveBack{
			current: filepath.Join(member.DstPath, name),
			parent:  filepath.Dir(member.SrcPath),
		})
	}

	restored := 0
	for _, step := range plan {
		outcome, err := s.mover.MoveBatch(ctx, []string{step.current}, step.parent)
		if err != nil {
			slog.Warn("undo move: original parent unavailable", "path", step.current, "parent", step.parent, "error", err)
			continue
		}
		if outcome.Processed == 0 {
			slog.Warn("undo move: item not moved back", "path", step.current, "results", outcome.Results)
			continue
		}
		restored += outcome.Processed
	}

	if restored == 0 {
		return 0, model.UndoFailed("no moved item could be returned")
	}

	return restored, nil
}

func (s *UndoService) undoCreateDir(batch []model.OperationRecord) (int, error) {
	if len(batch) != 1 {
		return 0, model.UndoFailed(fmt.Sprintf("create batch has %d records, expected 1", len(batch)))
	}

	rec := batch[0]
	if rec.DstPath == "" {
		return 0, model.UndoFailed(fmt.Sprintf("create record %d has no path", rec.ID))
	}

	// Non-recursive on purpose: content added since creation is never removed.
	if err := s.fs.Remove(rec.DstPath); err != nil {
		return 0, undoFailedWith("remove created directory", model.FromOS("remove", rec.DstPath, err))
	}

	return 1, nil
}

func undoFailedWith(reason string, err error) error {
	return &model.Error{Kind: model.KindUndoFailed, Op: "undo", Reason: reason, Err: err}
}
