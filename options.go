package flatvec

import (
	"log/slog"

	"github.com/flatvec/flatvec/blobstore"
	"github.com/flatvec/flatvec/codec"
)

type options struct {
	store   blobstore.Store
	codec   codec.Codec
	logger  *Logger
	metrics MetricsCollector
}

// Option configures VectorIndex constructor behavior.
type Option func(*options)

// WithStore configures the blob store used by Save/Load/Delete.
//
// If nil is passed, an in-memory store is used; snapshots then live only for
// the lifetime of the process.
func WithStore(s blobstore.Store) Option {
	return func(o *options) {
		if s == nil {
			s = blobstore.NewMemoryStore()
		}
		o.store = s
	}
}

// WithCodec configures the codec used to serialize snapshots.
//
// If nil is passed, codec.Default is used. Snapshots written with one codec
// must be loaded with the same codec (see codec.ByName).
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		store:   blobstore.NewMemoryStore(),
		codec:   codec.Default,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
