package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"local-file-manager/internal/model"
	"local-file-manager/internal/storage"
)

// MoveService performs batch moves, single renames and directory creation.
// Batches are best effort: one failed item never stops the rest.
type MoveService struct {
	fs    storage.FS
	newID func() string
}

func NewMoveService(fsys storage.FS) *MoveService {
	return &MoveService{fs: fsys, newID: uuid.NewString}
}

// MoveBatch moves every source into destDir, keeping each base name.
func (s *MoveService) MoveBatch(_ context.Context, sources []string, destDir string) (model.BatchOutcome, error) {
	if len(sources) == 0 {
		return model.BatchOutcome{}, model.InvalidPath("move", "", "no source paths given")
	}

	info, err := s.fs.Stat(destDir)
	if err != nil {
		return model.BatchOutcome{}, model.FromOS("move", destDir, err)
	}
	if !info.IsDir() {
		return model.BatchOutcome{}, model.InvalidPath("move", destDir, "destination is not a directory")
	}

	outcome := model.NewBatchOutcome(s.newID(), len(sources))
	for _, source := range sources {
		target, moveErr := s.moveInto(source, destDir)
		if moveErr != nil {
			outcome.Fail(source, model.ItemMessage(moveErr))
			continue
		}
		outcome.Succeeded(source, target)
	}

	outcome.Finish()
	return outcome, nil
}

func (s *MoveService) moveInto(source string, destDir string) (string, error) {
	name := filepath.Base(filepath.Clean(source))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", model.InvalidPath("move", source, "source must name an entry")
	}

	target := filepath.Join(destDir, name)
	if filepath.Clean(source) == target {
		return "", model.AlreadyExists("move", target)
	}

	if exists, err := storage.Exists(s.fs, source); err != nil {
		return "", model.FromOS("move", source, err)
	} else if !exists {
		return "", model.NotFound("move", source)
	}

	if isAncestor(source, destDir) {
		return "", model.InvalidPath("move", source, "cannot move a directory into itself")
	}

	if exists, err := storage.Exists(s.fs, target); err != nil {
		return "", model.FromOS("move", target, err)
	} else if exists {
		return "", model.AlreadyExists("move", target)
	}

	if err := movePath(s.fs, source, target); err != nil {
		return "", model.FromOS("move", source, err)
	}

	return target, nil
}

// RenameItem gives src a new name inside the same parent directory.
func (s *MoveService) RenameItem(_ context.Context, src string, newName string) (model.RenameResult, error) {
	if exists, err := storage.Exists(s.fs, src); err != nil {
		return model.RenameResult{}, model.FromOS("rename", src, err)
	} else if !exists {
		return model.RenameResult{}, model.NotFound("rename", src)
	}

	target := filepath.Join(filepath.Dir(src), newName)
	if exists, err := storage.Exists(s.fs, target); err != nil {
		return model.RenameResult{}, model.FromOS("rename", target, err)
	} else if exists && !s.sameEntry(src, target) {
		return model.RenameResult{}, model.AlreadyExists("rename", target)
	}

	if err := s.fs.Rename(src, target); err != nil {
		return model.RenameResult{}, model.FromOS("rename", src, err)
	}

	return model.RenameResult{OldPath: src, NewPath: target, Name: newName}, nil
}

// CreateDirectory makes exactly one new directory; parents are not created.
func (s *MoveService) CreateDirectory(_ context.Context, parent string, name string) (model.DirResult, error) {
	target := filepath.Join(parent, name)

	if exists, err := storage.Exists(s.fs, target); err != nil {
		return model.DirResult{}, model.FromOS("create directory", target, err)
	} else if exists {
		return model.DirResult{}, model.AlreadyExists("create directory", target)
	}

	if err := s.fs.Mkdir(target, 0o755); err != nil {
		return model.DirResult{}, model.FromOS("create directory", target, err)
	}

	return model.DirResult{Name: name, Path: target, CreatedAt: time.Now().UTC()}, nil
}

func isAncestor(ancestor string, path string) bool {
	ancestor = filepath.Clean(ancestor)
	path = filepath.Clean(path)
	if ancestor == path {
		return true
	}
	return strings.HasPrefix(path, ancestor+string(filepath.Separator))
}

// sameEntry allows "a.txt" -> "A.txt" on case-insensitive filesystems,
// where the target already "exists" as the source itself.
func (s *MoveService) sameEntry(src string, target string) bool {
	if src == target {
		return false
	}

	srcInfo, err := s.fs.Lstat(src)
	if err != nil {
		return false
	}
	targetInfo, err := s.fs.Lstat(target)
	if err != nil {
		return false
	}

	return os.SameFile(srcInfo, targetInfo)
}
