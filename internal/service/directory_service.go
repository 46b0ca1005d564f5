package service

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"local-file-manager/internal/model"
	"local-file-manager/internal/storage"
	"local-file-manager/internal/util"
)

// DirectoryService reads directory contents and file metadata. It never
// mutates the filesystem.
type DirectoryService struct {
	fs storage.FS
}

func NewDirectoryService(fsys storage.FS) *DirectoryService {
	return &DirectoryService{fs: fsys}
}

// List returns the immediate children of path sorted by name. Entries that
// disappear or cannot be stat'ed between the read and the stat are skipped.
func (s *DirectoryService) List(_ context.Context, path string) ([]model.FileEntry, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, model.FromOS("list directory", path, err)
	}

	if !info.IsDir() {
		return nil, model.InvalidPath("list directory", path, "not a directory")
	}

	entries, err := s.fs.ReadDir(path)
	if err != nil {
		return nil, model.FromOS("list directory", path, err)
	}

	items := make([]model.FileEntry, 0, len(entries))
	for _, entry := range entries {
		entryInfo, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}

		items = append(items, toFileEntry(filepath.Join(path, entry.Name()), entryInfo))
	}

	sortEntries(items, "name", "asc")
	return items, nil
}

// Search filters the children of path by a case-insensitive substring of
// their name. An empty query returns every child.
func (s *DirectoryService) Search(ctx context.Context, path string, query string) ([]model.FileEntry, error) {
	items, err := s.List(ctx, path)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items, nil
	}

	matches := make([]model.FileEntry, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			matches = append(matches, item)
		}
	}

	return matches, nil
}

func (s *DirectoryService) Stat(_ context.Context, path string) (model.FileStat, error) {
	linkInfo, err := s.fs.Lstat(path)
	if err != nil {
		return model.FileStat{}, model.FromOS("stat", path, err)
	}

	info := linkInfo
	isSymlink := linkInfo.Mode()&fs.ModeSymlink != 0
	if isSymlink {
		if target, targetErr := s.fs.Stat(path); targetErr == nil {
			info = target
		}
	}

	stat := model.FileStat{
		FileEntry:   toFileEntry(path, info),
		CreatedAt:   storage.CreatedAt(info),
		Permissions: info.Mode().String(),
		IsSymlink:   isSymlink,
	}
	if !info.IsDir() {
		stat.MimeType = util.MIMETypeForName(info.Name())
	}

	return stat, nil
}

func toFileEntry(path string, info fs.FileInfo) model.FileEntry {
	name := filepath.Base(path)
	entry := model.FileEntry{
		Name:       name,
		Path:       path,
		IsDir:      info.IsDir(),
		Type:       util.ClassifyName(name, info.IsDir()),
		ModifiedAt: info.ModTime().UTC(),
	}

	if !info.IsDir() {
		entry.Size = info.Size()
		entry.SizeHuman = humanizeSize(info.Size())
		entry.Extension = strings.TrimPrefix(filepath.Ext(name), ".")
	}

	return entry
}

// sortEntries orders directories and files together by the requested field.
// Ties keep name order so output is deterministic.
func sortEntries(items []model.FileEntry, sortBy string, order string) {
	field := strings.ToLower(strings.TrimSpace(sortBy))
	if field == "" {
		field = "name"
	}

	ascending := strings.ToLower(strings.TrimSpace(order)) != "desc"

	byName := func(i int, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	}

	less := func(i int, j int) bool {
		switch field {
		case "size":
			return items[i].Size < items[j].Size
		case "modified":
			return items[i].ModifiedAt.Before(items[j].ModifiedAt)
		case "type":
			if items[i].Type == items[j].Type {
				return byName(i, j)
			}
			return items[i].Type < items[j].Type
		default:
			return byName(i, j)
		}
	}

	sort.SliceStable(items, func(i int, j int) bool {
		if ascending {
			return less(i, j)
		}
		return less(j, i)
	})
}

func humanizeSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}

	units := []string{"KB", "MB", "GB", "TB"}
	value := float64(size)
	for _, unit := range units {
		value = value / 1024
		if value < 1024 {
			return fmt.Sprintf("%.0f %s", value, unit)
		}
	}

	return fmt.Sprintf("%.0f PB", value/1024)
}
