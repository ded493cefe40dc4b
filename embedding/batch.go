package embedding

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel embedding requests in EmbedBatch when no
// explicit limit is given.
const DefaultConcurrency = 4

// EmbedBatch embeds texts concurrently through e, preserving order.
// concurrency bounds the number of in-flight Embed calls; values <= 0 use
// DefaultConcurrency.
//
// The first failure cancels the remaining work and is returned.
func EmbedBatch(ctx context.Context, e Embedder, texts []string, concurrency int) ([][]float32, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	out := make([][]float32, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, text := range texts {
		g.Go(func() error {
			vec, err := e.Embed(ctx, text)
			if err != nil {
				return err
			}
			out[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
