package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-file-manager/internal/config"
	"local-file-manager/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	state := t.TempDir()
	return &config.Config{
		ServerPort:     "0",
		RequestTimeout: time.Second,
		StateDir:       state,
		TrashRoot:      filepath.Join(state, "trash"),
		RootsFile:      filepath.Join(state, "roots.yaml"),
		JournalDriver:  config.JournalDriverSQLite,
		SQLitePath:     filepath.Join(state, "db", "journal.db"),
	}
}

func TestNewEngineWithSQLiteJournal(t *testing.T) {
	cfg := testConfig(t)
	work := t.TempDir()
	cfg.AllowedRoots = []string{work}

	engine, err := NewEngine(context.Background(), cfg)
	require.NoError(t, err)
	defer engine.Close()

	require.NoError(t, engine.Health(context.Background()))
	assert.Equal(t, []string{work}, engine.Operations.AllowedRoots())

	ctx := context.Background()
	file := testutil.WriteFile(t, filepath.Join(work, "a.txt"), "a")

	out, err := engine.Operations.SoftDelete(ctx, []string{file})
	require.NoError(t, err)
	require.Equal(t, 1, out.Processed)

	result, err := engine.Operations.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsRestored)
	assert.Equal(t, "a", testutil.ReadFile(t, file))
}

func TestNewEngineJournalSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	work := t.TempDir()
	ctx := context.Background()

	first, err := NewEngine(ctx, cfg)
	require.NoError(t, err)
	_, err = first.Operations.MakeDir(ctx, work, "kept")
	require.NoError(t, err)
	first.Close()

	second, err := NewEngine(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()

	result, err := second.Operations.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsRestored)
	assert.False(t, testutil.Exists(t, filepath.Join(work, "kept")))
}

func TestNewAppBuildsServer(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	defer application.engine.Close()

	assert.Equal(t, ":0", application.server.Addr)
	assert.NotNil(t, application.server.Handler)
	assert.NotNil(t, application.hub)
}
