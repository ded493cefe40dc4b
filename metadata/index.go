package metadata

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Index is an inverted posting index over metadata records, keyed by the
// positional identity of the owning vector.
//
// Posting lists are Roaring Bitmaps per (field, value) pair. Only scalar
// values (strings, numbers, bools) participate in filtering; other value
// types are skipped.
//
// The index is not safe for concurrent use; it shares the single-owner model
// of the vector index that maintains it.
type Index struct {
	inverted map[string]map[string]*roaring.Bitmap
	all      *roaring.Bitmap
}

// NewIndex creates an empty posting index.
func NewIndex() *Index {
	return &Index{
		inverted: make(map[string]map[string]*roaring.Bitmap),
		all:      roaring.New(),
	}
}

// Add indexes the scalar fields of md under id.
func (ix *Index) Add(id uint32, md Metadata) {
	ix.all.Add(id)

	for key, value := range md {
		if !scalar(value) {
			continue
		}

		valueMap, ok := ix.inverted[key]
		if !ok {
			valueMap = make(map[string]*roaring.Bitmap)
			ix.inverted[key] = valueMap
		}

		valueKey := canonicalize(value)
		bitmap, ok := valueMap[valueKey]
		if !ok {
			bitmap = roaring.New()
			valueMap[valueKey] = bitmap
		}

		bitmap.Add(id)
	}
}

// Reset drops all posting lists.
func (ix *Index) Reset() {
	ix.inverted = make(map[string]map[string]*roaring.Bitmap)
	ix.all = roaring.New()
}

// Apply compiles f into the bitmap of ids whose records satisfy every
// condition. A nil filter matches all indexed ids.
//
// The returned bitmap is owned by the caller.
func (ix *Index) Apply(f *Filter) *roaring.Bitmap {
	result := ix.all.Clone()
	if f == nil {
		return result
	}

	for _, c := range f.conds {
		valueMap, ok := ix.inverted[c.key]
		if !ok {
			return roaring.New()
		}

		matched := roaring.New()
		for _, valueKey := range c.values {
			if bitmap, ok := valueMap[valueKey]; ok {
				matched.Or(bitmap)
			}
		}
		result.And(matched)
		if result.IsEmpty() {
			return result
		}
	}

	return result
}

func scalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int32, int64, uint, uint64, float32, float64:
		return true
	default:
		return false
	}
}
