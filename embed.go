package flatvec

import (
	"context"
	"fmt"

	"github.com/flatvec/flatvec/embedding"
	"github.com/flatvec/flatvec/metadata"
)

// AddText embeds text through e and adds the resulting vector with md.
// The embedder's output must match the index dimensionality.
func (vi *VectorIndex) AddText(ctx context.Context, e embedding.Embedder, text string, md metadata.Metadata) error {
	vec, err := e.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	return vi.Add(vec, md)
}

// SearchText embeds text through e and runs a top-k query with the resulting
// vector.
func (vi *VectorIndex) SearchText(ctx context.Context, e embedding.Embedder, text string, k int) ([]SearchResult, error) {
	vec, err := e.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return vi.Query(vec).KNN(k).Execute(ctx)
}
