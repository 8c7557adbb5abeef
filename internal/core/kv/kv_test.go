package kv_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizfindr/bizfindr/internal/core/kv"
	"github.com/bizfindr/bizfindr/internal/data/db"
	"github.com/bizfindr/bizfindr/internal/data/stores"
)

func newTestKV(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func TestTypedKV_SetAndGet(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[string](newTestKV(t), "page")

	require.NoError(t, typed.Set(ctx, "activeTab", "#notifications"))

	got, err := typed.Get(ctx, "activeTab")
	require.NoError(t, err)
	assert.Equal(t, "#notifications", got)
}

func TestTypedKV_ScopedPrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	page := kv.Scoped[int](store, "page")
	bare := kv.Scoped[int](store, "")

	require.NoError(t, page.Set(ctx, "count", 10))
	require.NoError(t, bare.Set(ctx, "count", 20))

	a, err := page.Get(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, 10, a)

	b, err := bare.Get(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, 20, b)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"count", "page:count"}, keys)
}

func TestTypedKV_Lookup(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[string](newTestKV(t), "")

	_, found, err := typed.Lookup(ctx, "activeTab")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, typed.Set(ctx, "activeTab", "#overview"))

	got, found, err := typed.Lookup(ctx, "activeTab")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "#overview", got)
}

func TestTypedKV_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	typed := kv.Scoped[string](store, "ns")

	require.NoError(t, typed.Set(ctx, "key", "val"))
	require.NoError(t, typed.Delete(ctx, "key"))

	has, err := store.Has(ctx, "ns:key")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestTypedKV_TTL(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[string](newTestKV(t), "search")

	require.NoError(t, typed.SetTTL(ctx, "draft", "gone", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := typed.Get(ctx, "draft")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTypedKV_StructValue(t *testing.T) {
	ctx := context.Background()

	type draft struct {
		Query   string            `json:"query"`
		Filters map[string]string `json:"filters"`
	}

	typed := kv.Scoped[draft](newTestKV(t), "search")
	require.NoError(t, typed.Set(ctx, "draft", draft{Query: "bakery", Filters: map[string]string{"status": "active"}}))

	got, err := typed.Get(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, "bakery", got.Query)
	assert.Equal(t, "active", got.Filters["status"])
}
