package codec

import (
	"github.com/klauspost/compress/zstd"
)

// zstdEncoder and zstdDecoder are shared across all ZstdCodec instances.
// EncodeAll/DecodeAll on a configured encoder/decoder are safe for
// concurrent use. Construction with static options cannot fail.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// ZstdCodec wraps another codec with zstd compression.
//
// Embedding snapshots are dominated by long numeric arrays that compress
// well; wrapping the JSON codec typically shrinks snapshots severalfold.
type ZstdCodec struct {
	inner Codec
}

// Zstd creates a zstd-compressing codec around inner.
// If inner is nil, the default codec is wrapped.
func Zstd(inner Codec) ZstdCodec {
	if inner == nil {
		inner = Default
	}
	return ZstdCodec{inner: inner}
}

// Marshal encodes the value with the inner codec and compresses the result.
func (c ZstdCodec) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

// Unmarshal decompresses data and decodes it with the inner codec.
func (c ZstdCodec) Unmarshal(data []byte, v any) error {
	decompressed, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return err
	}
	return c.inner.Unmarshal(decompressed, v)
}

// Name returns the composed codec name (e.g. "json+zstd").
func (c ZstdCodec) Name() string { return c.inner.Name() + "+zstd" }
