package imageio

import (
	"context"
	"image"

	"github.com/arloliu/posefile/internal/options"
	"github.com/arloliu/posefile/pkg/logger"
	"github.com/arloliu/posefile/pkg/metrics"
)

// Config holds LoadImage and SaveImage settings.
type Config struct {
	codec   Codec
	params  []Param
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option configures LoadImage and SaveImage.
type Option = options.Option[*Config]

// WithCodec replaces the file codec.
func WithCodec(c Codec) Option {
	return options.NoError(func(cfg *Config) {
		if c != nil {
			cfg.codec = c
		}
	})
}

// WithParams sets encoder parameters for SaveImage.
func WithParams(params ...Param) Option {
	return options.NoError(func(cfg *Config) {
		cfg.params = append(cfg.params, params...)
	})
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if l != nil {
			cfg.logger = l
		}
	})
}

// WithMetrics sets the metrics manager. The default is metrics.Default().
func WithMetrics(m *metrics.Manager) Option {
	return options.NoError(func(cfg *Config) {
		if m != nil {
			cfg.metrics = m
		}
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{codec: defaultCodec, logger: logger.Nop(), metrics: metrics.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadImage reads the image at path.
//
// A file that is missing, has no known extension or fails to decode is not an error: the
// failure is logged at warn level and a nil image is returned. The returned error is
// non-nil only for invalid options.
func LoadImage(path string, flags ReadFlag, opts ...Option) (image.Image, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	img, err := cfg.codec.Read(path, flags)
	if err != nil || img == nil {
		cfg.metrics.RecordImageLoad(true)
		cfg.logger.Warn(context.Background(), "empty image", logger.String("path", path), logger.Error(err))

		return nil, nil //nolint:nilnil // lenient load: an unreadable image is an empty result
	}

	cfg.metrics.RecordImageLoad(false)

	return img, nil
}

// SaveImage writes img to path in the container named by its extension.
// Every failure wraps errs.ErrIO.
func SaveImage(path string, img image.Image, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	if err := cfg.codec.Write(path, img, cfg.params...); err != nil {
		cfg.metrics.RecordErrorByComponent(metrics.ComponentImage, metrics.ErrorType(err))
		cfg.logger.Error(context.Background(), "save image failed", logger.String("path", path), logger.Error(err))

		return err
	}

	cfg.logger.Debug(context.Background(), "saved image", logger.String("path", path))

	return nil
}
