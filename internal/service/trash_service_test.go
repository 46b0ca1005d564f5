package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-file-manager/internal/model"
	"local-file-manager/internal/storage"
	"local-file-manager/internal/testutil"
)

func newTestTrash(t *testing.T, at time.Time) (*TrashService, string) {
	t.Helper()

	root := t.TempDir()
	svc, err := NewTrashService(storage.New(), filepath.Join(root, ".trash"))
	require.NoError(t, err)
	svc.now = func() time.Time { return at }

	return svc, root
}

func TestTrashService_SoftDeleteAndRestoreTwice(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	svc, root := newTestTrash(t, at)
	ctx := context.Background()

	a := testutil.WriteFile(t, filepath.Join(root, "work", "a.txt"), "A")
	b := testutil.WriteFile(t, filepath.Join(root, "work", "b", "c.txt"), "C")
	dir := filepath.Dir(b)

	out, err := svc.SoftDelete(ctx, []string{a, dir})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, "20250601_123045", out.TrashSlot)
	assert.False(t, testutil.Exists(t, a))
	assert.False(t, testutil.Exists(t, dir))

	slotDir := filepath.Join(svc.Root(), out.TrashSlot)
	assert.True(t, testutil.Exists(t, filepath.Join(slotDir, model.TrashManifestName)))

	restored, err := svc.Restore(ctx, out.TrashSlot, []string{a, dir})
	require.NoError(t, err)
	assert.Equal(t, 2, restored)
	assert.Equal(t, "A", testutil.ReadFile(t, a))
	assert.Equal(t, "C", testutil.ReadFile(t, b))

	again, err := svc.Restore(ctx, out.TrashSlot, []string{a, dir})
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}

func TestTrashService_SlotCollisionGetsSuffix(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc, root := newTestTrash(t, at)
	ctx := context.Background()

	first, err := svc.SoftDelete(ctx, []string{testutil.WriteFile(t, filepath.Join(root, "one.txt"), "1")})
	require.NoError(t, err)
	second, err := svc.SoftDelete(ctx, []string{testutil.WriteFile(t, filepath.Join(root, "two.txt"), "2")})
	require.NoError(t, err)

	assert.Equal(t, "20250102_030405", first.TrashSlot)
	assert.Equal(t, "20250102_030405_01", second.TrashSlot)

	latest, found, err := svc.LatestSlot(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, second.TrashSlot, latest)

	slots, err := svc.Slots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, second.TrashSlot, slots[0].ID)
	require.NotNil(t, slots[0].Manifest)
	assert.Equal(t, second.BatchID, slots[0].Manifest.BatchID)
	assert.Equal(t, []string{filepath.Join(root, "two.txt")}, slots[0].Manifest.Items)
}

func TestTrashService_SoftDeleteNothingMovedDropsSlot(t *testing.T) {
	t.Parallel()

	svc, root := newTestTrash(t, time.Now())

	out, err := svc.SoftDelete(context.Background(), []string{filepath.Join(root, "ghost")})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, 1, out.Failed)
	assert.Empty(t, out.TrashSlot)

	_, found, err := svc.LatestSlot(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTrashService_RefusesTrashItself(t *testing.T) {
	t.Parallel()

	svc, _ := newTestTrash(t, time.Now())

	out, err := svc.SoftDelete(context.Background(), []string{svc.Root()})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, "cannot move the trash into itself", out.Results[0].Message)
}

func TestTrashService_RestoreSkipsOccupiedTarget(t *testing.T) {
	t.Parallel()

	svc, root := newTestTrash(t, time.Now())
	ctx := context.Background()

	path := testutil.WriteFile(t, filepath.Join(root, "note.txt"), "original")
	out, err := svc.SoftDelete(ctx, []string{path})
	require.NoError(t, err)

	testutil.WriteFile(t, path, "replacement")

	restored, err := svc.Restore(ctx, out.TrashSlot, []string{path})
	require.NoError(t, err)
	assert.Equal(t, 0, restored)
	assert.Equal(t, "replacement", testutil.ReadFile(t, path))
	assert.True(t, testutil.Exists(t, filepath.Join(svc.Root(), out.TrashSlot, "note.txt")))
}

func TestTrashService_RestoreRecreatesParent(t *testing.T) {
	t.Parallel()

	svc, root := newTestTrash(t, time.Now())
	ctx := context.Background()

	path := testutil.WriteFile(t, filepath.Join(root, "gone", "deep.txt"), "d")
	out, err := svc.SoftDelete(ctx, []string{path})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "gone")))

	restored, err := svc.Restore(ctx, out.TrashSlot, []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.Equal(t, "d", testutil.ReadFile(t, path))
}

func TestTrashService_RestoreUnknownSlot(t *testing.T) {
	t.Parallel()

	svc, _ := newTestTrash(t, time.Now())

	_, err := svc.Restore(context.Background(), "../escape", nil)
	assert.True(t, errors.Is(err, model.ErrUndoFailed))

	_, err = svc.Restore(context.Background(), "20990101_000000", nil)
	assert.True(t, errors.Is(err, model.ErrUndoFailed))
}

func TestIsSlotName(t *testing.T) {
	t.Parallel()

	assert.True(t, isSlotName("20250101_101010"))
	assert.True(t, isSlotName("20250101_101010_07"))
	assert.False(t, isSlotName("20250101_101010_7"))
	assert.False(t, isSlotName("notes"))
	assert.False(t, isSlotName("20251301_101010"))
}
