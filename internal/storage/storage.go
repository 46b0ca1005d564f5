package storage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the filesystem surface the engine mutates. Paths are absolute OS paths
// that have already passed the PathGuard.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Mkdir(name string, perm fs.FileMode) error
	MkdirAll(name string, perm fs.FileMode) error
	Rename(oldPath string, newPath string) error
	Remove(name string) error
	RemoveAll(name string) error
	Open(name string) (io.ReadCloser, error)
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	EvalSymlinks(name string) (string, error)
	Readlink(name string) (string, error)
	Symlink(target string, link string) error
}

// OSFS is the real filesystem.
type OSFS struct{}

func New() OSFS {
	return OSFS{}
}

func (OSFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (OSFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (OSFS) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

func (OSFS) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(name, perm)
}

func (OSFS) Rename(oldPath string, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (OSFS) Remove(name string) error {
	return os.Remove(name)
}

func (OSFS) RemoveAll(name string) error {
	return os.RemoveAll(name)
}

func (OSFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Create truncates or creates name for writing.
func (OSFS) Create(name string, perm fs.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
}

func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OSFS) EvalSymlinks(name string) (string, error) {
	return filepath.EvalSymlinks(name)
}

func (OSFS) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

func (OSFS) Symlink(target string, link string) error {
	return os.Symlink(target, link)
}

// Exists reports whether name can be stat'ed without following a final symlink.
func Exists(fsys FS, name string) (bool, error) {
	_, err := fsys.Lstat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
