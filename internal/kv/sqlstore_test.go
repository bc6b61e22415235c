package kv_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/pocketdash/pocketdash/internal/kv"
)

func newSQLiteStore(t *testing.T) *kv.SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store, err := kv.NewSQLStore(context.Background(), db, "sqlite")
	require.NoError(t, err)

	return store
}

func TestSQLStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "blob", []byte(`{"a":1}`)))

	got, err := store.Get(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)
}

func TestSQLStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "blob", []byte("old")))
	require.NoError(t, store.Set(ctx, "blob", []byte("new")))

	got, err := store.Get(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestSQLStore_GetMissing(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestSQLStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "blob", []byte("v")))
	require.NoError(t, store.Delete(ctx, "blob"))
	require.NoError(t, store.Delete(ctx, "blob"))

	_, err := store.Get(ctx, "blob")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestSQLStore_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))
	require.NoError(t, store.Delete(ctx, "a"))

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}
