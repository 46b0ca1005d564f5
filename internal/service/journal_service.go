package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"local-file-manager/internal/model"
	"local-file-manager/internal/repository"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// JournalService is the append-only operation log. All access goes through
// one mutex so ids stay monotonic and batches are read consistently.
type JournalService struct {
	mu    sync.Mutex
	store repository.JournalStore
	now   func() time.Time
}

func NewJournalService(store repository.JournalStore) *JournalService {
	return &JournalService{store: store, now: time.Now}
}

func (s *JournalService) Append(ctx context.Context, rec model.OperationRecord) (int64, error) {
	if !rec.Kind.Valid() {
		return 0, model.JournalFailure("append", fmt.Errorf("unknown operation kind %q", rec.Kind))
	}
	if rec.Status == "" {
		rec.Status = model.StatusSuccess
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return 0, model.JournalFailure("append", err)
	}

	return id, nil
}

// MostRecentReversibleBatch finds the newest successful reversible record and
// returns its whole batch, oldest first. If an UNDO record is newer than any
// reversible record the result is empty: undo depth is one.
func (s *JournalService) MostRecentReversibleBatch(ctx context.Context) ([]model.OperationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest, found, err := s.store.LatestUndoCandidate(ctx)
	if err != nil {
		return nil, model.JournalFailure("find reversible batch", err)
	}
	if !found || latest.Kind == model.OpUndo {
		return nil, nil
	}

	if latest.BatchID == "" {
		return []model.OperationRecord{latest}, nil
	}

	members, err := s.store.FindByBatch(ctx, latest.BatchID)
	if err != nil {
		return nil, model.JournalFailure("find reversible batch", err)
	}

	batch := make([]model.OperationRecord, 0, len(members))
	for _, member := range members {
		if member.Status == model.StatusSuccess && member.Kind.Reversible() {
			batch = append(batch, member)
		}
	}

	return batch, nil
}

// Recent returns the newest records first. limit is clamped to [1, 500];
// zero or negative means the default of 50.
func (s *JournalService) Recent(ctx context.Context, limit int) ([]model.OperationRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, model.JournalFailure("list recent", err)
	}

	return records, nil
}
