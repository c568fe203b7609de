package orient

import (
	"log/slog"

	"github.com/hexark/orient/codec"
	"github.com/hexark/orient/resource"
	"github.com/hexark/orient/snapshot"
)

type options struct {
	codec       codec.Codec
	compression snapshot.Compression
	controller  *resource.Controller
	logger      *Logger
}

// Option configures Save and Load behavior.
type Option func(*options)

// WithCodec configures the codec used for the snapshot metadata section.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects the block compression for snapshot columns.
// The default is Zstd. Load ignores this option, the snapshot header
// records what was written.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController bounds memory, worker and IO usage during
// snapshot encode and decode. Pass nil for unlimited.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := orient.NewJSONLogger(slog.LevelInfo)
//	err := orient.Save(ctx, store, "scan.snap", m, orient.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

func applyOptions(optFns []Option) options {
	o := options{
		compression: snapshot.CompressionZstd,
		logger:      NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
