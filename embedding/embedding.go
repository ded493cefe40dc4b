// Package embedding defines the embedding collaborator consumed by
// applications built on the vector index.
//
// The index itself is agnostic to how vectors are produced and only enforces
// dimensionality; this package provides the interface an embedding model
// plugs in through, plus a rate-limited client for OpenAI-compatible HTTP
// embedding endpoints.
package embedding

import "context"

// DefaultDimension is the dimensionality of the sentence-embedding models
// this library is typically paired with.
const DefaultDimension = 384

// Embedder maps text to a fixed-length numeric vector.
type Embedder interface {
	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the length of the vectors Embed produces.
	Dimension() int
}

// Func adapts a plain function to the Embedder interface.
type Func struct {
	dimension int
	fn        func(ctx context.Context, text string) ([]float32, error)
}

// NewFunc creates an Embedder from fn producing vectors of the given
// dimension.
func NewFunc(dimension int, fn func(ctx context.Context, text string) ([]float32, error)) Func {
	return Func{dimension: dimension, fn: fn}
}

// Embed implements Embedder.
func (f Func) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.fn(ctx, text)
}

// Dimension implements Embedder.
func (f Func) Dimension() int { return f.dimension }
