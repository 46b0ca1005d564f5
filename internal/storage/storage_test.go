package storage

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSFSBasicOperations(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fsys := New()

	docs := filepath.Join(root, "docs")
	require.NoError(t, fsys.Mkdir(docs, 0o755))

	writer, err := fsys.Create(filepath.Join(docs, "hello.txt"), 0o644)
	require.NoError(t, err)
	_, err = writer.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	info, err := fsys.Stat(filepath.Join(docs, "hello.txt"))
	require.NoError(t, err)
	require.False(t, info.IsDir())

	reader, err := fsys.Open(filepath.Join(docs, "hello.txt"))
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	require.Equal(t, "hello world", string(content))

	archive := filepath.Join(root, "archive")
	require.NoError(t, fsys.MkdirAll(archive, 0o755))
	require.NoError(t, fsys.Rename(filepath.Join(docs, "hello.txt"), filepath.Join(archive, "renamed.txt")))

	exists, err := Exists(fsys, filepath.Join(archive, "renamed.txt"))
	require.NoError(t, err)
	require.True(t, exists)

	entries, err := fsys.ReadDir(archive)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "renamed.txt", entries[0].Name())

	require.NoError(t, fsys.RemoveAll(archive))
	exists, err = Exists(fsys, archive)
	require.NoError(t, err)
	require.False(t, exists)
}
