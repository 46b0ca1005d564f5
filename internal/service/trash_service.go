package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"local-file-manager/internal/model"
	"local-file-manager/internal/storage"
)

const (
	trashSlotLayout   = "20060102_150405"
	maxSlotCollisions = 99
)

// TrashService owns the trash directory. Every SoftDelete call claims a new
// timestamp-named slot; slots sort lexicographically in creation order.
type TrashService struct {
	fs    storage.FS
	root  string
	now   func() time.Time
	newID func() string
}

func NewTrashService(fsys storage.FS, trashRoot string) (*TrashService, error) {
	if strings.TrimSpace(trashRoot) == "" {
		return nil, fmt.Errorf("trash root cannot be empty")
	}

	root, err := filepath.Abs(trashRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve trash root: %w", err)
	}

	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("prepare trash directory: %w", err)
	}

	return &TrashService{fs: fsys, root: root, now: time.Now, newID: uuid.NewString}, nil
}

func (s *TrashService) Root() string {
	return s.root
}

// SoftDelete moves every path into one fresh slot and writes the slot
// manifest. The returned outcome names the slot in TrashSlot.
func (s *TrashService) SoftDelete(_ context.Context, paths []string) (model.BatchOutcome, error) {
	if len(paths) == 0 {
		return model.BatchOutcome{}, model.InvalidPath("soft delete", "", "no paths given")
	}

	slotID, slotDir, err := s.claimSlot()
	if err != nil {
		return model.BatchOutcome{}, err
	}

	outcome := model.NewBatchOutcome(s.newID(), len(paths))
	outcome.TrashSlot = slotID

	moved := make([]string, 0, len(paths))
	for _, path := range paths {
		target, itemErr := s.trashItem(path, slotDir)
		if itemErr != nil {
			outcome.Fail(path, model.ItemMessage(itemErr))
			continue
		}
		outcome.Succeeded(path, target)
		moved = append(moved, path)
	}
	outcome.Finish()

	if len(moved) == 0 {
		if removeErr := s.fs.Remove(slotDir); removeErr != nil {
			slog.Warn("failed to remove unused trash slot", "slot", slotID, "error", removeErr)
		}
		outcome.TrashSlot = ""
		return outcome, nil
	}

	manifest := model.TrashManifest{BatchID: outcome.BatchID, Timestamp: s.now().UTC(), Items: moved}
	if writeErr := s.writeManifest(slotDir, manifest); writeErr != nil {
		slog.Warn("failed to write trash manifest", "slot", slotID, "error", writeErr)
	}

	return outcome, nil
}

func (s *TrashService) trashItem(path string, slotDir string) (string, error) {
	clean := filepath.Clean(path)
	name := filepath.Base(clean)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", model.InvalidPath("soft delete", path, "path must name an entry")
	}

	if isAncestor(clean, s.root) || isAncestor(s.root, clean) {
		return "", model.InvalidPath("soft delete", path, "cannot move the trash into itself")
	}

	if name == model.TrashManifestName {
		return "", model.InvalidPath("soft delete", path, "name is reserved by the trash")
	}

	if exists, err := storage.Exists(s.fs, clean); err != nil {
		return "", model.FromOS("soft delete", path, err)
	} else if !exists {
		return "", model.NotFound("soft delete", path)
	}

	target := filepath.Join(slotDir, name)
	if exists, err := storage.Exists(s.fs, target); err != nil {
		return "", model.FromOS("soft delete", target, err)
	} else if exists {
		return "", &model.Error{Kind: model.KindAlreadyExists, Op: "soft delete", Path: path, Reason: "an item with the same name is already in this trash slot"}
	}

	if err := movePath(s.fs, clean, target); err != nil {
		return "", model.FromOS("soft delete", path, err)
	}

	return target, nil
}

// claimSlot creates the slot directory. Mkdir doubles as the uniqueness
// check, so two deletes in the same second get distinct slots.
func (s *TrashService) claimSlot() (string, string, error) {
	base := s.now().UTC().Format(trashSlotLayout)

	for attempt := 0; attempt <= maxSlotCollisions; attempt++ {
		slotID := base
		if attempt > 0 {
			slotID = fmt.Sprintf("%s_%02d", base, attempt)
		}

		slotDir := filepath.Join(s.root, slotID)
		err := s.fs.Mkdir(slotDir, 0o755)
		if err == nil {
			return slotID, slotDir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", model.FromOS("create trash slot", slotDir, err)
		}
	}

	return "", "", model.IoFailure("create trash slot", base, fmt.Errorf("too many slots created within one second"))
}

func (s *TrashService) writeManifest(slotDir string, manifest model.TrashManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(slotDir, model.TrashManifestName), data, 0o644)
}

func (s *TrashService) readManifest(slotDir string) (*model.TrashManifest, error) {
	data, err := s.fs.ReadFile(filepath.Join(slotDir, model.TrashManifestName))
	if err != nil {
		return nil, err
	}

	var manifest model.TrashManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// Restore moves the named originals back out of a slot. Entries already gone
// from the slot are skipped, as are originals whose path is occupied again.
// The slot directory is removed if nothing is left in it.
func (s *TrashService) Restore(_ context.Context, slotID string, originalPaths []string) (int, error) {
	slotDir, err := s.slotDir(slotID)
	if err != nil {
		return 0, err
	}

	info, err := s.fs.Stat(slotDir)
	if err != nil || !info.IsDir() {
		return 0, model.UndoFailed(fmt.Sprintf("trash slot %q not found", slotID))
	}

	restored := 0
	for _, original := range originalPaths {
		clean := filepath.Clean(original)
		item := filepath.Join(slotDir, filepath.Base(clean))

		if exists, statErr := storage.Exists(s.fs, item); statErr != nil || !exists {
			continue
		}

		if occupied, statErr := storage.Exists(s.fs, clean); statErr != nil || occupied {
			slog.Warn("restore target is occupied; leaving item in trash", "slot", slotID, "path", clean)
			continue
		}

		if mkErr := s.fs.MkdirAll(filepath.Dir(clean), 0o755); mkErr != nil {
			slog.Warn("failed to recreate parent for restore", "path", clean, "error", mkErr)
			continue
		}

		if moveErr := movePath(s.fs, item, clean); moveErr != nil {
			slog.Warn("failed to restore item", "slot", slotID, "path", clean, "error", moveErr)
			continue
		}

		restored++
	}

	// Fails while the manifest or unrestored items remain.
	_ = s.fs.Remove(slotDir)

	return restored, nil
}

// LatestSlot returns the newest slot id, if any.
func (s *TrashService) LatestSlot(_ context.Context) (string, bool, error) {
	ids, err := s.slotIDs()
	if err != nil {
		return "", false, err
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[len(ids)-1], true, nil
}

// Slots lists every slot newest first, with its manifest when readable.
func (s *TrashService) Slots(_ context.Context) ([]model.TrashSlot, error) {
	ids, err := s.slotIDs()
	if err != nil {
		return nil, err
	}

	slots := make([]model.TrashSlot, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		slotDir := filepath.Join(s.root, ids[i])
		slot := model.TrashSlot{ID: ids[i], Path: slotDir}
		if manifest, readErr := s.readManifest(slotDir); readErr == nil {
			slot.Manifest = manifest
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (s *TrashService) slotIDs() ([]string, error) {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return nil, model.FromOS("list trash", s.root, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && isSlotName(entry.Name()) {
			ids = append(ids, entry.Name())
		}
	}

	sort.Strings(ids)
	return ids, nil
}

func (s *TrashService) slotDir(slotID string) (string, error) {
	if !isSlotName(slotID) {
		return "", model.UndoFailed(fmt.Sprintf("invalid trash slot %q", slotID))
	}
	return filepath.Join(s.root, slotID), nil
}

// isSlotName accepts "20060102_150405" with an optional "_NN" suffix.
func isSlotName(name string) bool {
	if len(name) < len(trashSlotLayout) {
		return false
	}

	if _, err := time.Parse(trashSlotLayout, name[:len(trashSlotLayout)]); err != nil {
		return false
	}

	suffix := name[len(trashSlotLayout):]
	if suffix == "" {
		return true
	}
	if len(suffix) != 3 || suffix[0] != '_' {
		return false
	}
	return suffix[1] >= '0' && suffix[1] <= '9' && suffix[2] >= '0' && suffix[2] <= '9'
}
