package flatvec

import (
	"context"
	"time"

	"github.com/flatvec/flatvec/metadata"
)

// Query creates a new fluent query builder for the given query vector.
//
// Example:
//
//	results, err := vi.Query(query).
//	    KNN(10).
//	    Filter(metadata.Eq("category", "tech")).
//	    Execute(ctx)
func (vi *VectorIndex) Query(query []float32) *QueryBuilder {
	return &QueryBuilder{
		vi:    vi,
		query: query,
		k:     DefaultK,
	}
}

// QueryBuilder is a fluent builder for constructing similarity queries.
type QueryBuilder struct {
	vi    *VectorIndex
	query []float32
	k     int

	filter     *metadata.Filter
	filterFunc func(id uint32) bool
}

// KNN sets the number of results to return.
func (qb *QueryBuilder) KNN(k int) *QueryBuilder {
	qb.k = k
	return qb
}

// Filter restricts results to entries whose metadata satisfies f.
// Conditions are matched through the index's posting lists, so filtered
// queries skip scoring of excluded entries entirely.
func (qb *QueryBuilder) Filter(f *metadata.Filter) *QueryBuilder {
	qb.filter = f
	return qb
}

// Where restricts results to entries admitted by fn, keyed by positional
// identity. Combined with Filter, both must admit an entry.
func (qb *QueryBuilder) Where(fn func(id uint32) bool) *QueryBuilder {
	qb.filterFunc = fn
	return qb
}

// Execute runs the query and returns the ranked results.
func (qb *QueryBuilder) Execute(ctx context.Context) ([]SearchResult, error) {
	start := time.Now()

	results, err := qb.execute(ctx)

	qb.vi.metrics.RecordSearch(qb.k, time.Since(start), err)
	qb.vi.logger.LogSearch(qb.k, len(results), err)
	return results, err
}

func (qb *QueryBuilder) execute(ctx context.Context) ([]SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	allow := qb.filterFunc
	if qb.filter != nil {
		matched := qb.vi.postings.Apply(qb.filter)
		fn := qb.filterFunc
		allow = func(id uint32) bool {
			if !matched.Contains(id) {
				return false
			}
			return fn == nil || fn(id)
		}
	}

	return qb.vi.scan(qb.query, qb.k, allow)
}
