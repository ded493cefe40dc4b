package flatvec

import (
	"context"
	"errors"
	"testing"

	"github.com/flatvec/flatvec/embedding"
	"github.com/flatvec/flatvec/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lengthEmbedder maps text onto a one-hot vector keyed by text length.
func lengthEmbedder(dimension int) embedding.Func {
	return embedding.NewFunc(dimension, func(_ context.Context, text string) ([]float32, error) {
		if text == "" {
			return nil, errors.New("empty text")
		}
		vec := make([]float32, dimension)
		vec[len(text)%dimension] = 1
		return vec, nil
	})
}

func TestAddText(t *testing.T) {
	ctx := context.Background()
	e := lengthEmbedder(4)

	t.Run("AddsEmbeddedVector", func(t *testing.T) {
		vi, err := New(4)
		require.NoError(t, err)

		require.NoError(t, vi.AddText(ctx, e, "abc", metadata.Metadata{"text": "abc"}))
		assert.Equal(t, 1, vi.Size())
	})

	t.Run("EmbedderFailure", func(t *testing.T) {
		vi, err := New(4)
		require.NoError(t, err)

		err = vi.AddText(ctx, e, "", nil)
		assert.ErrorContains(t, err, "embed")
		assert.Equal(t, 0, vi.Size())
	})

	t.Run("DimensionEnforced", func(t *testing.T) {
		vi, err := New(8)
		require.NoError(t, err)

		err = vi.AddText(ctx, e, "abc", nil)
		var mismatch *ErrDimensionMismatch
		assert.ErrorAs(t, err, &mismatch)
	})
}

func TestSearchText(t *testing.T) {
	ctx := context.Background()
	e := lengthEmbedder(4)

	vi, err := New(4)
	require.NoError(t, err)
	require.NoError(t, vi.AddText(ctx, e, "ab", metadata.Metadata{"text": "ab"}))
	require.NoError(t, vi.AddText(ctx, e, "abc", metadata.Metadata{"text": "abc"}))

	results, err := vi.SearchText(ctx, e, "xyz", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "abc", results[0].Metadata["text"])
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}
