package snapshot

import (
	"fmt"

	"github.com/arloliu/segseq/endian"
	"github.com/arloliu/segseq/format"
	"github.com/arloliu/segseq/internal/options"
	"github.com/arloliu/segseq/logging"
)

// Config holds the encoder settings of a snapshot.
type Config struct {
	logger      *logging.Logger
	engine      endian.EndianEngine
	compression format.CompressionType
}

// Option configures snapshot encoding.
type Option = options.Option[*Config]

// NewConfig returns the encoder settings after applying opts.
//
// Defaults: little-endian, zstd compression, no logging.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:      logging.NoopLogger(),
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionZstd,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Compression returns the configured payload compression.
func (c *Config) Compression() format.CompressionType {
	return c.compression
}

// Engine returns the configured byte order.
func (c *Config) Engine() endian.EndianEngine {
	return c.engine
}

// WithCompression selects the payload compression.
//
// Parameters:
//   - compression: CompressionNone, CompressionZstd, CompressionS2 or CompressionLZ4
//
// Returns:
//   - Option: Fails with ErrInvalidOption for an unknown compression type
func WithCompression(compression format.CompressionType) Option {
	return options.Named("snapshot compression", func(c *Config) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = compression
			return nil
		default:
			return fmt.Errorf("%s is unsupported", compression)
		}
	})
}

// WithBigEndian writes the header and raw payload words big-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian writes the header and raw payload words little-endian.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithLogger sets the logger receiving encode events. A nil logger disables logging.
func WithLogger(logger *logging.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = logging.NoopLogger()
		}
		c.logger = logger
	})
}
