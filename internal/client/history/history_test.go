// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/papyr/internal/client/history"
)

// Both implementations must satisfy the same MRU semantics.
func stores(t *testing.T) map[string]history.Store {
	t.Helper()

	sqliteStore, err := history.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]history.Store{
		"sqlite": sqliteStore,
		"memory": history.NewMemoryStore(),
	}
}

func TestStore_MostRecentFirst(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, term := range []string{"golang", "postgres", "redis"} {
				require.NoError(t, store.Record(ctx, term))
			}

			terms, err := store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"redis", "postgres", "golang"}, terms)
		})
	}
}

func TestStore_PromotesDuplicates(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, term := range []string{"golang", "postgres", "golang"} {
				require.NoError(t, store.Record(ctx, term))
			}

			terms, err := store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"golang", "postgres"}, terms)
		})
	}
}

func TestStore_CapsAtMaxEntries(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < history.MaxEntries+3; i++ {
				require.NoError(t, store.Record(ctx, fmt.Sprintf("term-%d", i)))
			}

			terms, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, terms, history.MaxEntries)
			// The oldest entries fell off.
			assert.Equal(t, "term-7", terms[0])
			assert.NotContains(t, terms, "term-0")
		})
	}
}

func TestStore_IgnoresEmptyAndClears(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Record(ctx, ""))
			require.NoError(t, store.Record(ctx, "golang"))

			terms, err := store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"golang"}, terms)

			require.NoError(t, store.Clear(ctx))
			terms, err = store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, terms)
		})
	}
}

// SQLite history survives a close/reopen cycle.
func TestSQLiteStore_PersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := history.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, "golang"))
	require.NoError(t, store.Record(ctx, "postgres"))
	require.NoError(t, store.Close())

	reopened, err := history.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	terms, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"postgres", "golang"}, terms)
}
