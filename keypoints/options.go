package keypoints

import (
	"fmt"

	"github.com/arloliu/posefile/internal/options"
	"github.com/arloliu/posefile/pkg/logger"
	"github.com/arloliu/posefile/pkg/metrics"
)

// maxPrecision is the most significant digits a float32 can need.
const maxPrecision = 9

// WriterConfig holds document writer settings.
type WriterConfig struct {
	precision int
	logger    logger.Logger
	metrics   *metrics.Manager
}

// WriterOption configures WriteDocument, SaveDocument and Saver.
type WriterOption = options.Option[*WriterConfig]

func newWriterConfig(opts ...WriterOption) (*WriterConfig, error) {
	cfg := &WriterConfig{
		logger:  logger.Nop(),
		metrics: metrics.Default(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithPrecision writes floats with the given number of significant digits instead of the
// shortest form that reads back as the same float32. Use 6 to reproduce files written by
// tools that print with default stream precision. 0 restores the shortest form.
func WithPrecision(digits int) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if digits < 0 || digits > maxPrecision {
			return fmt.Errorf("precision %d out of range [0, %d]", digits, maxPrecision)
		}
		c.precision = digits

		return nil
	})
}

// WithLogger sets the logger used by file operations.
func WithLogger(l logger.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithMetrics sets the metrics manager. The default is metrics.Default().
func WithMetrics(m *metrics.Manager) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if m != nil {
			c.metrics = m
		}
	})
}
