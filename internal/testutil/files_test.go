package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "file.txt")
	WriteFile(t, path, "hello")

	assert.True(t, Exists(t, path))
	assert.Equal(t, "hello", ReadFile(t, path))
}

func TestMakeDirAndExists(t *testing.T) {
	root := t.TempDir()
	dir := MakeDir(t, filepath.Join(root, "a", "b"))

	assert.True(t, Exists(t, dir))
	assert.False(t, Exists(t, filepath.Join(root, "missing")))
}
