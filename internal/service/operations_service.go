package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"local-file-manager/internal/allowlist"
	"local-file-manager/internal/event"
	"local-file-manager/internal/model"
	"local-file-manager/internal/storage"
	"local-file-manager/internal/util"
)

// OperationsService is the single entry point callers use. It validates,
// guards, performs, journals and announces every operation. Mutating calls
// are serialized by one engine lock held across the mutation and its journal
// writes.
type OperationsService struct {
	mu        sync.Mutex
	fs        storage.FS
	guard     *storage.PathGuard
	roots     *allowlist.Store
	directory *DirectoryService
	mover     *MoveService
	trash     *TrashService
	journal   *JournalService
	undo      *UndoService
	bus       event.Bus
	homeDir   func() (string, error)
}

type Components struct {
	FS        storage.FS
	Guard     *storage.PathGuard
	Roots     *allowlist.Store
	Directory *DirectoryService
	Mover     *MoveService
	Trash     *TrashService
	Journal   *JournalService
	Undo      *UndoService
	Bus       event.Bus
}

func NewOperationsService(c Components) *OperationsService {
	return &OperationsService{
		fs:        c.FS,
		guard:     c.Guard,
		roots:     c.Roots,
		directory: c.Directory,
		mover:     c.Mover,
		trash:     c.Trash,
		journal:   c.Journal,
		undo:      c.Undo,
		bus:       c.Bus,
		homeDir:   os.UserHomeDir,
	}
}

type ListOptions struct {
	Sort  string
	Order string
}

func (s *OperationsService) ListDir(ctx context.Context, path string, opts ListOptions) (model.DirectoryListData, error) {
	path, err := cleanPath("list directory", path)
	if err != nil {
		return model.DirectoryListData{}, err
	}
	if err := s.guard.Check("list directory", path, s.roots.Snapshot()); err != nil {
		return model.DirectoryListData{}, err
	}

	items, err := s.directory.List(ctx, path)
	if err != nil {
		return model.DirectoryListData{}, err
	}
	sortEntries(items, opts.Sort, opts.Order)

	s.record(ctx, model.OperationRecord{Kind: model.OpListDir, SrcPath: path, Status: model.StatusSuccess})

	data := model.DirectoryListData{
		CurrentPath: path,
		ParentPath:  filepath.Dir(path),
		Items:       items,
	}
	s.publish(event.TypeDirListed, map[string]any{"path": path, "count": len(items)})
	return data, nil
}

func (s *OperationsService) Search(ctx context.Context, path string, query string) ([]model.FileEntry, error) {
	path, err := cleanPath("search", path)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Check("search", path, s.roots.Snapshot()); err != nil {
		return nil, err
	}

	return s.directory.Search(ctx, path, query)
}

func (s *OperationsService) Stat(ctx context.Context, path string) (model.FileStat, error) {
	path, err := cleanPath("stat", path)
	if err != nil {
		return model.FileStat{}, err
	}
	if err := s.guard.Check("stat", path, s.roots.Snapshot()); err != nil {
		return model.FileStat{}, err
	}

	return s.directory.Stat(ctx, path)
}

func (s *OperationsService) MakeDir(ctx context.Context, parent string, name string) (model.DirResult, error) {
	if err := util.ValidateFileName(name); err != nil {
		return model.DirResult{}, err
	}

	parent, err := cleanPath("create directory", parent)
	if err != nil {
		return model.DirResult{}, err
	}
	if err := s.guard.Check("create directory", parent, s.roots.Snapshot()); err != nil {
		return model.DirResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.mover.CreateDirectory(ctx, parent, name)
	if err != nil {
		return model.DirResult{}, err
	}

	s.record(ctx, model.OperationRecord{Kind: model.OpCreateDir, DstPath: result.Path, Status: model.StatusSuccess})
	s.publish(event.TypeDirCreated, result)
	return result, nil
}

func (s *OperationsService) Rename(ctx context.Context, path string, newName string) (model.RenameResult, error) {
	if err := util.ValidateFileName(newName); err != nil {
		return model.RenameResult{}, err
	}

	path, err := cleanPath("rename", path)
	if err != nil {
		return model.RenameResult{}, err
	}
	roots := s.roots.Snapshot()
	if err := s.guard.Check("rename", path, roots); err != nil {
		return model.RenameResult{}, err
	}
	if err := s.guard.CheckParent("rename", filepath.Join(filepath.Dir(path), newName), roots); err != nil {
		return model.RenameResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.mover.RenameItem(ctx, path, newName)
	if err != nil {
		return model.RenameResult{}, err
	}

	s.record(ctx, model.OperationRecord{
		Kind:    model.OpRename,
		SrcPath: result.OldPath,
		DstPath: result.NewPath,
		Status:  model.StatusSuccess,
	})
	s.publish(event.TypeItemRenamed, result)
	return result, nil
}

func (s *OperationsService) Move(ctx context.Context, sources []string, destination string) (model.BatchOutcome, error) {
	destination, err := cleanPath("move", destination)
	if err != nil {
		return model.BatchOutcome{}, err
	}
	cleaned, err := s.guardAll("move", sources)
	if err != nil {
		return model.BatchOutcome{}, err
	}
	if err := s.guard.Check("move", destination, s.roots.Snapshot()); err != nil {
		return model.BatchOutcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.mover.MoveBatch(ctx, cleaned, destination)
	if err != nil {
		return model.BatchOutcome{}, err
	}

	for _, item := range outcome.Results {
		rec := model.OperationRecord{
			Kind:    model.OpMove,
			SrcPath: item.Path,
			DstPath: destination,
			Status:  model.StatusSuccess,
			BatchID: outcome.BatchID,
		}
		if !item.Success {
			rec.Status = model.StatusFailure
			rec.Message = item.Message
		}
		s.record(ctx, rec)
	}

	s.publish(event.TypeItemsMoved, outcome)
	return outcome, nil
}

func (s *OperationsService) SoftDelete(ctx context.Context, paths []string) (model.BatchOutcome, error) {
	cleaned, err := s.guardAll("soft delete", paths)
	if err != nil {
		return model.BatchOutcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.trash.SoftDelete(ctx, cleaned)
	if err != nil {
		return model.BatchOutcome{}, err
	}

	for _, item := range outcome.Results {
		rec := model.OperationRecord{
			Kind:      model.OpDelete,
			SrcPath:   item.Path,
			Status:    model.StatusSuccess,
			BatchID:   outcome.BatchID,
			TrashSlot: outcome.TrashSlot,
		}
		if !item.Success {
			rec.Status = model.StatusFailure
			rec.Message = item.Message
			rec.TrashSlot = ""
		}
		s.record(ctx, rec)
	}

	s.publish(event.TypeItemsTrashed, outcome)
	return outcome, nil
}

func (s *OperationsService) Undo(ctx context.Context) (model.UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.undo.Undo(ctx)
	if err != nil {
		return model.UndoResult{}, err
	}

	s.publish(event.TypeUndoApplied, result)
	return result, nil
}

func (s *OperationsService) RecentLogs(ctx context.Context, limit int) ([]model.OperationRecord, error) {
	return s.journal.Recent(ctx, limit)
}

func (s *OperationsService) TrashSlots(ctx context.Context) ([]model.TrashSlot, error) {
	return s.trash.Slots(ctx)
}

func (s *OperationsService) AllowedRoots() []string {
	return s.roots.Snapshot()
}

// SetAllowedRoots replaces the allow-list. Every root must be an existing
// absolute directory; an empty list lifts the restriction.
func (s *OperationsService) SetAllowedRoots(_ context.Context, roots []string) ([]string, error) {
	for _, root := range roots {
		trimmed := strings.TrimSpace(root)
		if !filepath.IsAbs(trimmed) {
			return nil, model.InvalidPath("set allowed roots", root, "root must be an absolute path")
		}

		info, err := s.fs.Stat(trimmed)
		if err != nil {
			return nil, model.FromOS("set allowed roots", root, err)
		}
		if !info.IsDir() {
			return nil, model.InvalidPath("set allowed roots", root, "root must be a directory")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roots.Replace(roots); err != nil {
		return nil, model.IoFailure("set allowed roots", "", err)
	}

	current := s.roots.Snapshot()
	slog.Info("allowed roots updated", "roots", current)
	s.publish(event.TypeRootsChanged, current)
	return current, nil
}

// Favorites lists the usual user folders that exist and are reachable
// under the current allow-list.
func (s *OperationsService) Favorites(_ context.Context) ([]model.Favorite, error) {
	home, err := s.homeDir()
	if err != nil {
		return nil, model.IoFailure("favorites", "", err)
	}

	candidates := []model.Favorite{
		{Name: "Home", Path: home},
		{Name: "Desktop", Path: filepath.Join(home, "Desktop")},
		{Name: "Documents", Path: filepath.Join(home, "Documents")},
		{Name: "Downloads", Path: filepath.Join(home, "Downloads")},
	}

	roots := s.roots.Snapshot()
	favorites := make([]model.Favorite, 0, len(candidates))
	for _, candidate := range candidates {
		info, statErr := s.fs.Stat(candidate.Path)
		if statErr != nil || !info.IsDir() {
			continue
		}
		if s.guard.Check("favorites", candidate.Path, roots) != nil {
			continue
		}
		favorites = append(favorites, candidate)
	}

	return favorites, nil
}

// guardAll checks every path before anything is mutated; one rejection
// fails the whole call.
func (s *OperationsService) guardAll(op string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, model.InvalidPath(op, "", "no paths given")
	}

	roots := s.roots.Snapshot()
	cleaned := make([]string, 0, len(paths))
	for _, path := range paths {
		path, err := cleanPath(op, path)
		if err != nil {
			return nil, err
		}
		if err := s.guard.Check(op, path, roots); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, path)
	}

	return cleaned, nil
}

// record appends to the journal. A lost record never undoes a completed
// filesystem change, so failures are only logged.
func (s *OperationsService) record(ctx context.Context, rec model.OperationRecord) {
	if _, err := s.journal.Append(ctx, rec); err != nil {
		slog.Warn("failed to journal operation",
			"action", rec.Kind,
			"path", rec.SrcPath,
			"batch_id", rec.BatchID,
			"error", err,
		)
	}
}

func (s *OperationsService) publish(eventType event.Type, payload any) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.New(eventType, payload))
}

// cleanPath makes path absolute against the process working directory, so
// journal records and trash manifests never depend on where undo runs.
// An empty path stays empty for the guard to reject.
func cleanPath(op string, path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", model.InvalidPath(op, path, "cannot resolve absolute path")
	}
	return abs, nil
}
