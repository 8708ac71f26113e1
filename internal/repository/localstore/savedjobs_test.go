package localstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ravularamesh74/Job-Portal/internal/repository/localstore"
)

func openTestDB(t *testing.T) *localstore.DB {
	t.Helper()
	db, err := localstore.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSavedJobStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := db.ForSession("sess-1")
	ctx := context.Background()

	t.Run("empty before first write", func(t *testing.T) {
		ids, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("save and reload", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []string{"job-1", "job-2"}))

		ids, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"job-1", "job-2"}, ids)
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []string{"job-3"}))

		ids, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"job-3"}, ids)
	})

	t.Run("nil clears the list", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, nil))

		ids, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestSavedJobStoreIsolatesSessions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.ForSession("sess-1").Save(ctx, []string{"job-1"}))
	require.NoError(t, db.ForSession("sess-2").Save(ctx, []string{"job-2"}))

	ids1, err := db.ForSession("sess-1").Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"job-1"}, ids1)

	ids2, err := db.ForSession("sess-2").Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"job-2"}, ids2)
}
