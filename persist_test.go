package flatvec

import (
	"context"
	"errors"
	"testing"

	"github.com/flatvec/flatvec/blobstore"
	"github.com/flatvec/flatvec/codec"
	"github.com/flatvec/flatvec/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyStore fails every operation with a fixed error.
type faultyStore struct {
	err error
}

func (f *faultyStore) Put(context.Context, string, []byte) error    { return f.err }
func (f *faultyStore) Get(context.Context, string) ([]byte, error)  { return nil, f.err }
func (f *faultyStore) Delete(context.Context, string) error         { return f.err }

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		store := blobstore.NewMemoryStore()

		vi, err := New(3, WithStore(store))
		require.NoError(t, err)
		require.NoError(t, vi.Add([]float32{1, 0, 0}, metadata.Metadata{"id": 1}))
		require.NoError(t, vi.Add([]float32{0.25, 0.5, 0.75}, metadata.Metadata{"id": 2, "tag": "x"}))

		require.NoError(t, vi.Save(ctx, "notes"))

		// A fresh index constructed with any dimensionality is wholly
		// replaced by the loaded state.
		restored, err := New(1, WithStore(store))
		require.NoError(t, err)

		loaded, err := restored.Load(ctx, "notes")
		require.NoError(t, err)
		require.True(t, loaded)

		assert.Equal(t, 3, restored.Dimensions())
		assert.Equal(t, 2, restored.Size())

		results, err := restored.Search([]float32{0.25, 0.5, 0.75}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.Equal(t, 1, results[0].Index)
		// JSON round-trip turns numbers into float64.
		assert.Equal(t, float64(2), results[0].Metadata["id"])
		assert.Equal(t, "x", results[0].Metadata["tag"])
	})

	t.Run("RoundTripCompressedCodecs", func(t *testing.T) {
		for _, c := range []codec.Codec{codec.Zstd(codec.JSON{}), codec.LZ4(codec.JSON{})} {
			t.Run(c.Name(), func(t *testing.T) {
				store := blobstore.NewMemoryStore()

				vi, err := New(2, WithStore(store), WithCodec(c))
				require.NoError(t, err)
				require.NoError(t, vi.Add([]float32{1, 0}, metadata.Metadata{"id": 1}))
				require.NoError(t, vi.Save(ctx, "idx"))

				restored, err := New(2, WithStore(store), WithCodec(c))
				require.NoError(t, err)
				loaded, err := restored.Load(ctx, "idx")
				require.NoError(t, err)
				require.True(t, loaded)
				assert.Equal(t, 1, restored.Size())
			})
		}
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		store := blobstore.NewMemoryStore()

		vi, err := New(2, WithStore(store))
		require.NoError(t, err)
		require.NoError(t, vi.Add([]float32{1, 0}, nil))
		require.NoError(t, vi.Save(ctx, "idx"))

		require.NoError(t, vi.Add([]float32{0, 1}, nil))
		require.NoError(t, vi.Save(ctx, "idx"))

		restored, err := New(2, WithStore(store))
		require.NoError(t, err)
		loaded, err := restored.Load(ctx, "idx")
		require.NoError(t, err)
		require.True(t, loaded)
		assert.Equal(t, 2, restored.Size())
	})

	t.Run("LoadMissingKey", func(t *testing.T) {
		vi, err := New(2)
		require.NoError(t, err)
		require.NoError(t, vi.Add([]float32{1, 0}, metadata.Metadata{"id": 1}))

		loaded, err := vi.Load(ctx, "never-saved")
		require.NoError(t, err)
		assert.False(t, loaded)

		// Prior state untouched.
		assert.Equal(t, 1, vi.Size())
		assert.Equal(t, 2, vi.Dimensions())
	})

	t.Run("LoadStorageFault", func(t *testing.T) {
		boom := errors.New("store unavailable")
		vi, err := New(2, WithStore(&faultyStore{err: boom}))
		require.NoError(t, err)
		require.NoError(t, vi.Add([]float32{1, 0}, nil))

		loaded, err := vi.Load(ctx, "idx")
		assert.False(t, loaded)

		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "load", perr.Op)
		assert.ErrorIs(t, err, boom)

		assert.Equal(t, 1, vi.Size())
	})

	t.Run("LoadCorruptSnapshot", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "idx", []byte("not json")))

		vi, err := New(2, WithStore(store))
		require.NoError(t, err)
		require.NoError(t, vi.Add([]float32{1, 0}, nil))

		loaded, err := vi.Load(ctx, "idx")
		assert.False(t, loaded)
		var perr *PersistenceError
		assert.ErrorAs(t, err, &perr)

		// No partial overwrite.
		assert.Equal(t, 1, vi.Size())
		assert.Equal(t, 2, vi.Dimensions())
	})

	t.Run("LoadMisalignedSnapshot", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		raw := codec.MustMarshal(codec.JSON{}, map[string]any{
			"name":       "idx",
			"dimensions": 2,
			"vectors":    [][]float32{{1, 0}},
			"metadata":   []metadata.Metadata{},
		})
		require.NoError(t, store.Put(ctx, "idx", raw))

		vi, err := New(2, WithStore(store))
		require.NoError(t, err)

		loaded, err := vi.Load(ctx, "idx")
		assert.False(t, loaded)
		assert.ErrorContains(t, err, "corrupt snapshot")
	})

	t.Run("LoadWrongVectorLength", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		raw := codec.MustMarshal(codec.JSON{}, map[string]any{
			"name":       "idx",
			"dimensions": 3,
			"vectors":    [][]float32{{1, 0}},
			"metadata":   []metadata.Metadata{{}},
		})
		require.NoError(t, store.Put(ctx, "idx", raw))

		vi, err := New(3, WithStore(store))
		require.NoError(t, err)

		loaded, err := vi.Load(ctx, "idx")
		assert.False(t, loaded)
		assert.ErrorContains(t, err, "corrupt snapshot")
	})

	t.Run("SaveStorageFault", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		vi, err := New(2, WithStore(&faultyStore{err: boom}))
		require.NoError(t, err)

		err = vi.Save(ctx, "idx")
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "save", perr.Op)
		assert.Equal(t, "idx", perr.Name)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("LoadRestoresFilterIndex", func(t *testing.T) {
		store := blobstore.NewMemoryStore()

		vi, err := New(2, WithStore(store))
		require.NoError(t, err)
		require.NoError(t, vi.Add([]float32{1, 0}, metadata.Metadata{"category": "tech"}))
		require.NoError(t, vi.Add([]float32{0, 1}, metadata.Metadata{"category": "sports"}))
		require.NoError(t, vi.Save(ctx, "idx"))

		restored, err := New(2, WithStore(store))
		require.NoError(t, err)
		loaded, err := restored.Load(ctx, "idx")
		require.NoError(t, err)
		require.True(t, loaded)

		results, err := restored.Query([]float32{1, 1}).
			Filter(metadata.Eq("category", "tech")).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 0, results[0].Index)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesSnapshot", func(t *testing.T) {
		store := blobstore.NewMemoryStore()

		vi, err := New(2, WithStore(store))
		require.NoError(t, err)
		require.NoError(t, vi.Add([]float32{1, 0}, nil))
		require.NoError(t, vi.Save(ctx, "idx"))

		require.NoError(t, vi.Delete(ctx, "idx"))

		loaded, err := vi.Load(ctx, "idx")
		require.NoError(t, err)
		assert.False(t, loaded)
	})

	t.Run("AbsentKeyNoOps", func(t *testing.T) {
		vi, err := New(2)
		require.NoError(t, err)
		assert.NoError(t, vi.Delete(ctx, "never-saved"))
	})

	t.Run("StorageFault", func(t *testing.T) {
		boom := errors.New("transaction aborted")
		vi, err := New(2, WithStore(&faultyStore{err: boom}))
		require.NoError(t, err)

		err = vi.Delete(ctx, "idx")
		var perr *PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "delete", perr.Op)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSaveLoadLocalStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	vi, err := New(2, WithStore(store), WithCodec(codec.Zstd(nil)))
	require.NoError(t, err)
	require.NoError(t, vi.Add([]float32{3, 4}, metadata.Metadata{"id": 1}))
	require.NoError(t, vi.Save(ctx, "idx"))

	restored, err := New(2, WithStore(store), WithCodec(codec.Zstd(nil)))
	require.NoError(t, err)
	loaded, err := restored.Load(ctx, "idx")
	require.NoError(t, err)
	require.True(t, loaded)

	results, err := restored.Search([]float32{6, 8}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}
