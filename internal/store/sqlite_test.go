package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/goal-tracker/internal/store"
	"github.com/nhle/goal-tracker/tests/testutil"
)

func TestSQLiteStore_Migrations(t *testing.T) {
	s := testutil.NewTestStore(t)

	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestSQLiteStore_MissingDocument(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	rev, err := s.Revision(ctx)
	require.NoError(t, err)
	assert.Zero(t, rev)
}

func TestSQLiteStore_SaveBumpsRevision(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	want := sampleGoals()
	require.NoError(t, s.Save(ctx, want))
	require.NoError(t, s.Save(ctx, want))

	rev, err := s.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rev)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].Title, got[0].Title)
	assert.True(t, want[0].BaseTodos[0].Equal(got[0].BaseTodos[0]))
}

func TestSQLiteStore_ReopenKeepsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), store.DatabaseFilename)
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleGoals()))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	v, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, path, store.Location(s))
}
