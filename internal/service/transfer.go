package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"syscall"

	"local-file-manager/internal/storage"
)

// movePath renames source to destination, falling back to copy-then-delete
// when the two live on different devices. The destination must not exist.
func movePath(fsys storage.FS, source string, destination string) error {
	err := fsys.Rename(source, destination)
	if err == nil {
		return nil
	}
	if !isCrossDeviceRenameError(err) {
		return err
	}

	slog.Debug("rename crossed devices; copying instead", "source", source, "destination", destination)

	if exists, statErr := storage.Exists(fsys, destination); statErr != nil {
		return statErr
	} else if exists {
		return &fs.PathError{Op: "copy", Path: destination, Err: fs.ErrExist}
	}

	if err := copyTree(fsys, source, destination); err != nil {
		if cleanupErr := fsys.RemoveAll(destination); cleanupErr != nil {
			slog.Warn("failed to clean up partial copy", "destination", destination, "error", cleanupErr)
		}
		return fmt.Errorf("copy across devices: %w", err)
	}

	if err := fsys.RemoveAll(source); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}

	return nil
}

func isCrossDeviceRenameError(err error) bool {
	if errors.Is(err, syscall.EXDEV) {
		return true
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "cross-device") ||
		strings.Contains(message, "different disk drive")
}

type copyJob struct {
	source      string
	destination string
}

// copyTree copies a file, symlink or directory tree using an explicit work
// list, so directory depth is bounded by memory rather than stack.
func copyTree(fsys storage.FS, source string, destination string) error {
	pending := []copyJob{{source: source, destination: destination}}

	for len(pending) > 0 {
		job := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		info, err := fsys.Lstat(job.source)
		if err != nil {
			return err
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := fsys.Readlink(job.source)
			if err != nil {
				return err
			}
			if err := fsys.Symlink(target, job.destination); err != nil {
				return err
			}

		case info.IsDir():
			// Owner write is kept so children can be created underneath.
			if err := fsys.Mkdir(job.destination, info.Mode().Perm()|0o700); err != nil {
				return err
			}

			entries, err := fsys.ReadDir(job.source)
			if err != nil {
				return err
			}

			for _, entry := range entries {
				pending = append(pending, copyJob{
					source:      filepath.Join(job.source, entry.Name()),
					destination: filepath.Join(job.destination, entry.Name()),
				})
			}

		default:
			if err := copyFile(fsys, job.source, job.destination, info.Mode()); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyFile(fsys storage.FS, source string, destination string, mode fs.FileMode) error {
	input, err := fsys.Open(source)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := fsys.Create(destination, mode.Perm())
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(output, input)
	closeErr := output.Close()
	if copyErr != nil {
		return copyErr
	}
	if closeErr != nil {
		return closeErr
	}

	return nil
}
