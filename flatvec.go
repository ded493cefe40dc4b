// Package flatvec provides a minimal in-memory nearest-neighbor index over
// fixed-dimension embedding vectors.
//
// A VectorIndex owns an ordered collection of (vector, metadata) pairs sharing
// one fixed dimensionality. Search is an exact brute-force scan scored with
// cosine similarity; there is no approximate search structure. The design
// targets at most low-thousands of vectors held entirely in memory.
//
// Snapshots of the full index state can be saved to and restored from a
// durable key-value blob store (see the blobstore package), serialized through
// a pluggable codec (see the codec package).
//
// # Quick start
//
//	vi, err := flatvec.New(384)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = vi.Add(vec, metadata.Metadata{"id": 1})
//
//	results, err := vi.Search(query, 5)
//
// With persistence:
//
//	vi, _ := flatvec.New(384,
//	    flatvec.WithStore(blobstore.NewLocalStore("./data")),
//	    flatvec.WithCodec(codec.Zstd(codec.JSON{})),
//	)
//	if err := vi.Save(ctx, "notes"); err != nil { ... }
//
// # Concurrency
//
// A VectorIndex expects exactly one in-process owner and holds no locks.
// Callers must serialize mutation around the persistence operations; if
// multiple owners are required, the host application must add its own
// synchronization layer.
package flatvec

import (
	"cmp"
	"slices"
	"time"

	"github.com/flatvec/flatvec/blobstore"
	"github.com/flatvec/flatvec/codec"
	"github.com/flatvec/flatvec/distance"
	"github.com/flatvec/flatvec/metadata"
)

// DefaultK is the number of results returned by the fluent query builder when
// no explicit k is set.
const DefaultK = 5

// VectorIndex is an in-memory brute-force similarity index.
//
// Vectors and metadata are kept in lockstep, insertion order preserved; the
// position in the sequence is a vector's implicit identity. Individual entries
// cannot be deleted, only the whole index cleared or replaced by Load.
type VectorIndex struct {
	dimensions int
	vectors    [][]float32
	meta       []metadata.Metadata
	postings   *metadata.Index

	store   blobstore.Store
	codec   codec.Codec
	logger  *Logger
	metrics MetricsCollector
}

// SearchResult is a single ranked match.
type SearchResult struct {
	// Index is the positional identity of the matched entry.
	Index int

	// Score is the cosine similarity between the query and the entry,
	// higher is better.
	Score float32

	// Metadata is the record attached to the entry at Add time.
	Metadata metadata.Metadata
}

// Fields flattens the result into a single map holding "score", "index" and
// all metadata fields.
//
// Metadata fields take precedence on collision, but metadata records reusing
// the "score" or "index" keys are not supported and the collision behavior
// must not be relied upon.
func (r SearchResult) Fields() map[string]any {
	fields := make(map[string]any, len(r.Metadata)+2)
	fields["score"] = r.Score
	fields["index"] = r.Index
	for k, v := range r.Metadata {
		fields[k] = v
	}
	return fields
}

// New creates an empty index for vectors of the given dimensionality.
//
// By default the index persists to an in-memory store using the default
// codec; see WithStore and WithCodec.
func New(dimensions int, optFns ...Option) (*VectorIndex, error) {
	if dimensions <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimensions}
	}

	o := applyOptions(optFns)

	return &VectorIndex{
		dimensions: dimensions,
		postings:   metadata.NewIndex(),
		store:      o.store,
		codec:      o.codec,
		logger:     o.logger,
		metrics:    o.metrics,
	}, nil
}

// Add appends a defensive copy of vector together with its metadata record.
// A nil metadata record is treated as empty.
//
// Add returns *ErrDimensionMismatch if the vector length disagrees with the
// index dimensionality; stored state is unchanged on error.
func (vi *VectorIndex) Add(vector []float32, md metadata.Metadata) error {
	start := time.Now()

	if len(vector) != vi.dimensions {
		err := &ErrDimensionMismatch{Expected: vi.dimensions, Actual: len(vector)}
		vi.metrics.RecordAdd(time.Since(start), err)
		vi.logger.LogAdd(len(vi.vectors), len(vector), err)
		return err
	}

	if md == nil {
		md = metadata.Metadata{}
	} else {
		md = md.Clone()
	}

	id := uint32(len(vi.vectors))
	vi.vectors = append(vi.vectors, slices.Clone(vector))
	vi.meta = append(vi.meta, md)
	vi.postings.Add(id, md)

	vi.metrics.RecordAdd(time.Since(start), nil)
	vi.logger.LogAdd(int(id), len(vector), nil)
	return nil
}

// Search scores query against every stored vector using cosine similarity and
// returns at most min(k, Size()) results sorted by descending score. Ties keep
// insertion order. An empty index or k == 0 yields an empty result.
//
// Search returns ErrInvalidK if k is negative and *ErrDimensionMismatch if the
// query length disagrees with the index dimensionality.
func (vi *VectorIndex) Search(query []float32, k int) ([]SearchResult, error) {
	start := time.Now()

	results, err := vi.scan(query, k, nil)

	vi.metrics.RecordSearch(k, time.Since(start), err)
	vi.logger.LogSearch(k, len(results), err)
	return results, err
}

// scan is the shared brute-force core behind Search and the query builder.
// allow, if non-nil, restricts scoring to entries it admits.
func (vi *VectorIndex) scan(query []float32, k int, allow func(id uint32) bool) ([]SearchResult, error) {
	if k < 0 {
		return nil, ErrInvalidK
	}
	if len(query) != vi.dimensions {
		return nil, &ErrDimensionMismatch{Expected: vi.dimensions, Actual: len(query)}
	}

	results := make([]SearchResult, 0, len(vi.vectors))
	for i, v := range vi.vectors {
		if allow != nil && !allow(uint32(i)) {
			continue
		}
		results = append(results, SearchResult{
			Index:    i,
			Score:    distance.CosineSimilarity(query, v),
			Metadata: vi.meta[i],
		})
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if k < len(results) {
		results = results[:k:k]
	}
	return results, nil
}

// Size returns the current count of stored entries.
func (vi *VectorIndex) Size() int { return len(vi.vectors) }

// Dimensions returns the fixed vector dimensionality of the index.
func (vi *VectorIndex) Dimensions() int { return vi.dimensions }

// Clear discards all vectors and metadata, leaving the dimensionality
// unchanged.
func (vi *VectorIndex) Clear() {
	vi.vectors = nil
	vi.meta = nil
	vi.postings.Reset()
}
