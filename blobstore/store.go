package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when no blob exists under a name.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is a durable key-value object store for index snapshots.
type Store interface {
	// Put writes a blob under name, overwriting any existing blob.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the blob stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes the blob under name. Deleting an absent blob is not
	// an error.
	Delete(ctx context.Context, name string) error
}
