package floatarray

import (
	"fmt"

	"github.com/arloliu/posefile/compress"
	"github.com/arloliu/posefile/endian"
	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/format"
	"github.com/arloliu/posefile/internal/options"
	"github.com/arloliu/posefile/pkg/logger"
	"github.com/arloliu/posefile/pkg/metrics"
)

// Config holds the codec settings.
type Config struct {
	engine      endian.EndianEngine
	compression format.CompressionType
	codec       compress.Codec
	logger      logger.Logger
	metrics     *metrics.Manager
}

// Option configures a Codec.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		engine:      endian.NativeEngine(),
		compression: format.CompressionNone,
		logger:      logger.Nop(),
		metrics:     metrics.Default(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	cfg.codec = codec

	return cfg, nil
}

// Engine returns the byte order the codec reads and writes.
func (c *Config) Engine() endian.EndianEngine {
	return c.engine
}

// Compression returns the file compression type.
func (c *Config) Compression() format.CompressionType {
	return c.compression
}

// WithEngine sets the byte order. The default is the host's native order.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(c *Config) error {
		if engine == nil {
			return fmt.Errorf("nil endian engine")
		}
		c.engine = engine

		return nil
	})
}

// WithLittleEndian reads and writes little-endian records.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian reads and writes big-endian records. It is only needed for files produced on
// big-endian hosts.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithCompression wraps whole records written by SaveFile and WriteArray, and expects the same
// wrapping in LoadFile and ReadArray. Encode and Decode always work on bare records.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("%w: array compression %v", errs.ErrUnsupportedCompression, comp)
		}
	})
}

// WithLogger sets the logger used for file operations.
func WithLogger(l logger.Logger) Option {
	return options.NoError(func(c *Config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithMetrics sets the metrics manager. The default is metrics.Default().
func WithMetrics(m *metrics.Manager) Option {
	return options.NoError(func(c *Config) {
		if m != nil {
			c.metrics = m
		}
	})
}
