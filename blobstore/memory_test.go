package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PutGet", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Put(ctx, "a", []byte("hello")))

		data, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("Upsert", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Put(ctx, "a", []byte("v1")))
		require.NoError(t, store.Put(ctx, "a", []byte("v2")))

		data, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("GetMissing", func(t *testing.T) {
		store := NewMemoryStore()

		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Put(ctx, "a", []byte("x")))
		require.NoError(t, store.Delete(ctx, "a"))

		_, err := store.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting again is a no-op.
		assert.NoError(t, store.Delete(ctx, "a"))
	})

	t.Run("CopyOnWrite", func(t *testing.T) {
		store := NewMemoryStore()

		src := []byte("abc")
		require.NoError(t, store.Put(ctx, "a", src))
		src[0] = 'x'

		data, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)

		// Mutating the returned slice must not affect the store either.
		data[0] = 'y'
		again, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})
}
