package embedding

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder is a deterministic embedder for tests.
func hashEmbedder(dimension int) Func {
	return NewFunc(dimension, func(_ context.Context, text string) ([]float32, error) {
		vec := make([]float32, dimension)
		for i, r := range text {
			vec[(i+int(r))%dimension] += 1
		}
		return vec, nil
	})
}

func TestFunc(t *testing.T) {
	e := hashEmbedder(8)
	assert.Equal(t, 8, e.Dimension())

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vec, 8)

	// Deterministic.
	again, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, vec, again)
}

func TestEmbedBatch(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		e := hashEmbedder(4)
		texts := []string{"a", "b", "c", "d", "e"}

		vecs, err := EmbedBatch(context.Background(), e, texts, 2)
		require.NoError(t, err)
		require.Len(t, vecs, len(texts))

		for i, text := range texts {
			want, _ := e.Embed(context.Background(), text)
			assert.Equal(t, want, vecs[i], "position %d", i)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		vecs, err := EmbedBatch(context.Background(), hashEmbedder(4), nil, 0)
		require.NoError(t, err)
		assert.Empty(t, vecs)
	})

	t.Run("PropagatesFailure", func(t *testing.T) {
		boom := errors.New("boom")
		e := NewFunc(4, func(_ context.Context, text string) ([]float32, error) {
			if strings.HasPrefix(text, "bad") {
				return nil, boom
			}
			return make([]float32, 4), nil
		})

		_, err := EmbedBatch(context.Background(), e, []string{"ok", "bad-1", "ok"}, 1)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("BoundsConcurrency", func(t *testing.T) {
		var inFlight, peak atomic.Int32
		e := NewFunc(1, func(ctx context.Context, _ string) ([]float32, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			return []float32{1}, nil
		})

		_, err := EmbedBatch(context.Background(), e, make([]string, 32), 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})
}
