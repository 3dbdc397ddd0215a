package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	t.Run("Miss returns nil entry and nil error", func(t *testing.T) {
		entry, err := store.Get(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("Put then Get round-trips", func(t *testing.T) {
		want := &entities.CacheEntry{
			Key:       "https://www.tiktok.com/@u/video/1|best",
			FileID:    "BAACAgIAAxkBAAIB",
			Kind:      entities.MediaKindVideo,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, store.Put(ctx, want))

		got, err := store.Get(ctx, want.Key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.Key, got.Key)
		assert.Equal(t, want.FileID, got.FileID)
		assert.Equal(t, want.Kind, got.Kind)
	})

	t.Run("Put replaces existing key", func(t *testing.T) {
		key := "https://instagram.com/p/xyz/|best|file"
		require.NoError(t, store.Put(ctx, &entities.CacheEntry{
			Key: key, FileID: "old", Kind: entities.MediaKindDocument, CreatedAt: time.Now(),
		}))
		require.NoError(t, store.Put(ctx, &entities.CacheEntry{
			Key: key, FileID: "new", Kind: entities.MediaKindDocument, CreatedAt: time.Now(),
		}))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "new", got.FileID)
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewSQLiteStore(path, zerolog.Nop())
	require.NoError(t, err)

	entry := &entities.CacheEntry{
		Key:       "https://youtu.be/abc|480",
		FileID:    "file-42",
		Kind:      entities.MediaKindVideo,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Put(ctx, entry))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, entry.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.FileID, got.FileID)
}
