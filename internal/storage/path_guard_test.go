package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"local-file-manager/internal/model"
)

func TestPathGuardIsAllowed(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	other := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "inner"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(other, "secret.txt"), []byte("x"), 0o644))

	guard := NewPathGuard()

	t.Run("root itself is allowed", func(t *testing.T) {
		require.True(t, guard.IsAllowed(root, []string{root}))
	})

	t.Run("descendant is allowed", func(t *testing.T) {
		require.True(t, guard.IsAllowed(filepath.Join(root, "docs", "inner"), []string{root}))
	})

	t.Run("any of several roots", func(t *testing.T) {
		require.True(t, guard.IsAllowed(filepath.Join(other, "secret.txt"), []string{root, other}))
	})

	t.Run("outside path is rejected", func(t *testing.T) {
		require.False(t, guard.IsAllowed(filepath.Join(other, "secret.txt"), []string{root}))
	})

	t.Run("dot-dot escape is rejected", func(t *testing.T) {
		escape := filepath.Join(root, "docs", "..", "..", filepath.Base(other), "secret.txt")
		require.False(t, guard.IsAllowed(escape, []string{filepath.Join(root, "docs")}))
	})

	t.Run("missing path is rejected", func(t *testing.T) {
		require.False(t, guard.IsAllowed(filepath.Join(root, "nope"), []string{root}))
	})

	t.Run("empty root set allows nothing", func(t *testing.T) {
		require.False(t, guard.IsAllowed(root, nil))
	})

	t.Run("sibling with shared prefix is rejected", func(t *testing.T) {
		sibling := root + "-sibling"
		require.NoError(t, os.MkdirAll(sibling, 0o755))
		t.Cleanup(func() { _ = os.RemoveAll(sibling) })

		require.False(t, guard.IsAllowed(sibling, []string{root}))
	})
}

func TestPathGuardRejectsSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(outside, link))

	guard := NewPathGuard()
	require.False(t, guard.IsAllowed(link, []string{root}))
}

func TestPathGuardCheck(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	guard := NewPathGuard()

	t.Run("empty allow-list is unrestricted", func(t *testing.T) {
		require.NoError(t, guard.Check("list", outside, nil))
	})

	t.Run("outside root is not allowed", func(t *testing.T) {
		err := guard.Check("list", outside, []string{root})
		require.ErrorIs(t, err, model.ErrNotAllowed)
	})

	t.Run("control characters are invalid", func(t *testing.T) {
		err := guard.Check("list", root+"/bad\nname", []string{root})
		require.ErrorIs(t, err, model.ErrInvalidPath)
	})

	t.Run("empty path is invalid", func(t *testing.T) {
		err := guard.Check("list", "  ", nil)
		require.ErrorIs(t, err, model.ErrInvalidPath)
	})

	t.Run("parent check accepts a new child", func(t *testing.T) {
		require.NoError(t, guard.CheckParent("mkdir", filepath.Join(root, "new-dir"), []string{root}))
	})

	t.Run("parent check rejects dot-dot names", func(t *testing.T) {
		err := guard.CheckParent("mkdir", root+string(filepath.Separator)+"..", []string{root})
		require.Error(t, err)
	})
}

func TestPathGuardResolverFailure(t *testing.T) {
	t.Parallel()

	guard := NewPathGuardWithResolver(func(string) (string, error) {
		return "", errors.New("boom")
	})

	require.False(t, guard.IsAllowed("/anything", []string{"/"}))
}

func TestIsWithinRootPlatformAware(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		require.True(t, isWithinRoot(`C:\Storage\Root`, `c:\storage\root\folder\file.txt`))
		return
	}

	require.False(t, isWithinRoot(`/tmp/Root`, `/tmp/root/folder/file.txt`))
	require.True(t, isWithinRoot(`/`, `/tmp/file.txt`))
}
