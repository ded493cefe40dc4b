// Package metadata provides the open key-value records attached to indexed
// vectors, plus equality filtering over them backed by a Roaring Bitmap
// inverted index.
package metadata

// Metadata is an arbitrary key-value record describing one indexed vector.
//
// Values survive a JSON snapshot round-trip, so numeric values read back as
// float64 regardless of the Go type they were written with. Filters
// canonicalize numbers so that Eq("year", 2024) still matches after a reload.
type Metadata map[string]any

// Clone returns a shallow copy of the record. Nil stays nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
