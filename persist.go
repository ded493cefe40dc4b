package flatvec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flatvec/flatvec/blobstore"
	"github.com/flatvec/flatvec/metadata"
)

// snapshot is the persisted record shape. Field names are part of the stored
// format; keep them stable.
type snapshot struct {
	Name       string              `json:"name"`
	Dimensions int                 `json:"dimensions"`
	Vectors    [][]float32         `json:"vectors"`
	Metadata   []metadata.Metadata `json:"metadata"`
}

// Save serializes the full index state under the given name, overwriting any
// existing snapshot stored under that name.
//
// Failures are reported as *PersistenceError wrapping the underlying storage
// fault. No retries are attempted.
func (vi *VectorIndex) Save(ctx context.Context, name string) error {
	start := time.Now()
	err := vi.save(ctx, name)
	vi.metrics.RecordSave(time.Since(start), err)
	vi.logger.LogSave(name, len(vi.vectors), err)
	return err
}

func (vi *VectorIndex) save(ctx context.Context, name string) error {
	snap := snapshot{
		Name:       name,
		Dimensions: vi.dimensions,
		Vectors:    vi.vectors,
		Metadata:   vi.meta,
	}

	data, err := vi.codec.Marshal(snap)
	if err != nil {
		return &PersistenceError{Op: "save", Name: name, cause: err}
	}

	if err := vi.store.Put(ctx, name, data); err != nil {
		return &PersistenceError{Op: "save", Name: name, cause: err}
	}
	return nil
}

// Load attempts to restore the index from the snapshot stored under name.
//
// On success it atomically replaces dimensions, vectors and metadata with the
// loaded state and returns (true, nil). If no snapshot exists under the name,
// or the storage container has not been provisioned yet, it returns
// (false, nil). Any storage or decode fault returns (false, err) with the
// fault wrapped in *PersistenceError.
//
// The index is left in its prior state on every failure path; load never
// applies a partial overwrite.
func (vi *VectorIndex) Load(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	loaded, entries, err := vi.load(ctx, name)
	vi.metrics.RecordLoad(loaded, time.Since(start), err)
	vi.logger.LogLoad(name, loaded, entries, err)
	return loaded, err
}

func (vi *VectorIndex) load(ctx context.Context, name string) (bool, int, error) {
	data, err := vi.store.Get(ctx, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, &PersistenceError{Op: "load", Name: name, cause: err}
	}

	var snap snapshot
	if err := vi.codec.Unmarshal(data, &snap); err != nil {
		return false, 0, &PersistenceError{Op: "load", Name: name, cause: err}
	}
	if err := snap.validate(); err != nil {
		return false, 0, &PersistenceError{Op: "load", Name: name, cause: err}
	}

	// Materialize the replacement state fully before touching the index so a
	// corrupt snapshot cannot leave it half-updated.
	vectors := make([][]float32, len(snap.Vectors))
	meta := make([]metadata.Metadata, len(snap.Metadata))
	postings := metadata.NewIndex()
	for i, v := range snap.Vectors {
		vectors[i] = v
		md := snap.Metadata[i]
		if md == nil {
			md = metadata.Metadata{}
		}
		meta[i] = md
		postings.Add(uint32(i), md)
	}

	vi.dimensions = snap.Dimensions
	vi.vectors = vectors
	vi.meta = meta
	vi.postings = postings
	return true, len(vectors), nil
}

func (s *snapshot) validate() error {
	if s.Dimensions <= 0 {
		return &ErrInvalidDimension{Dimension: s.Dimensions}
	}
	if len(s.Vectors) != len(s.Metadata) {
		return fmt.Errorf("corrupt snapshot: %d vectors but %d metadata records",
			len(s.Vectors), len(s.Metadata))
	}
	for i, v := range s.Vectors {
		if len(v) != s.Dimensions {
			return fmt.Errorf("corrupt snapshot: vector %d has %d dimensions, want %d",
				i, len(v), s.Dimensions)
		}
	}
	return nil
}

// Delete removes the snapshot stored under name. Deleting a snapshot that
// does not exist is not an error.
//
// Failures are reported as *PersistenceError wrapping the underlying storage
// fault.
func (vi *VectorIndex) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := vi.store.Delete(ctx, name)
	if err != nil {
		err = &PersistenceError{Op: "delete", Name: name, cause: err}
	}
	vi.metrics.RecordDelete(time.Since(start), err)
	vi.logger.LogDelete(name, err)
	return err
}
