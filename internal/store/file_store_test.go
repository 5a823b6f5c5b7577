package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/goal-tracker/internal/model"
	"github.com/nhle/goal-tracker/internal/store"
)

var now = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func sampleGoals() []model.Goal {
	g := model.NewGoal("Workout", "💪", "red", true, now)
	tmpl := model.NewTemplate("run", 0, now)
	g.BaseTodos = []model.Item{tmpl}
	g.Todos = []model.Item{tmpl.Instantiate(now)}
	return []model.Goal{g}
}

func TestFileStore_MissingDocument(t *testing.T) {
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	want := sampleGoals()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.True(t, want[0].Todos[0].Equal(got[0].Todos[0]))

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, store.DocumentFilename, entries[0].Name())
	assert.Equal(t, filepath.Join(dir, store.DocumentFilename), s.Path())
	assert.Equal(t, s.Path(), store.Location(s))
}

func TestFileStore_SaveReplaces(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleGoals()))
	require.NoError(t, s.Save(ctx, nil))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.DocumentFilename), []byte("[{"), 0o644))
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_CanceledContext(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Save(ctx, sampleGoals()), context.Canceled)
}

func TestNewFileStore_EmptyDir(t *testing.T) {
	_, err := store.NewFileStore("")
	assert.Error(t, err)
}

func TestResolveDataDir_EnvOverride(t *testing.T) {
	t.Setenv("GOALS_DATA_DIR", "/srv/goals")
	dir, err := store.ResolveDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/goals", dir)
}
