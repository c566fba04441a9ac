// Package archive saves and loads named float arrays as a single json, xml, yaml or yml
// file.
//
// The file path is the caller's base name plus the format name as extension:
//
//	archive.Save(arrays, "calibration/camera0", format.Yml) // writes calibration/camera0.yml
//
// Encoding is delegated to a Backend per format; RegisterBackend swaps one out without
// touching this package's callers. Empty arrays are stored as a placeholder with no sizes
// and no data and load back as arrays without dimensions.
package archive

import (
	"context"
	"fmt"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/format"
	"github.com/arloliu/posefile/internal/collision"
	"github.com/arloliu/posefile/internal/fsutil"
	"github.com/arloliu/posefile/internal/options"
	"github.com/arloliu/posefile/internal/pathutil"
	"github.com/arloliu/posefile/ndarray"
	"github.com/arloliu/posefile/pkg/logger"
	"github.com/arloliu/posefile/pkg/metrics"
)

// Named pairs an array with the name it is stored under.
type Named struct {
	Array *ndarray.Array
	Name  string
}

// Config holds archive settings.
type Config struct {
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option configures Save and Load.
type Option = options.Option[*Config]

// WithLogger sets the logger.
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

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{logger: logger.Nop(), metrics: metrics.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path returns the file an archive with the given base name and format is stored in.
func Path(fileNameNoExtension string, f format.DataFormat) string {
	return pathutil.FullName(fileNameNoExtension, f.String())
}

// Save writes arrays to fileNameNoExtension + "." + f, replacing any existing file.
// A later array with the same name replaces an earlier one.
func Save(arrays []Named, fileNameNoExtension string, f format.DataFormat, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	path := Path(fileNameNoExtension, f)
	ctx := context.Background()

	tracker := collision.NewTracker()
	for _, named := range arrays {
		tracker.Track(named.Name)
	}
	if dups := tracker.Duplicates(); len(dups) > 0 {
		cfg.logger.Warn(ctx, "duplicate array names, later arrays replace earlier ones",
			logger.String("path", path), logger.Any("names", dups))
	}

	n, err := save(arrays, path, f)
	if err != nil {
		cfg.metrics.RecordErrorByComponent(metrics.ComponentArchive, metrics.ErrorType(err))
		cfg.logger.Error(ctx, "save archive failed", logger.String("path", path), logger.Error(err))

		return err
	}

	cfg.metrics.RecordArchiveSave(f.String())
	cfg.metrics.RecordBytesWritten(metrics.ComponentArchive, n)
	cfg.logger.Debug(ctx, "saved archive", logger.String("path", path), logger.Int("arrays", len(arrays)))

	return nil
}

func save(arrays []Named, path string, f format.DataFormat) (int, error) {
	factory, err := backendFor(f)
	if err != nil {
		return 0, err
	}

	backend, err := factory(nil)
	if err != nil {
		return 0, err
	}

	for _, named := range arrays {
		if err := backend.WriteNamed(named.Name, toEntry(named.Array)); err != nil {
			return 0, fmt.Errorf("%s: array %q: %w", path, named.Name, err)
		}
	}

	data, err := backend.Encode()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	if err := fsutil.WriteFile(path, data); err != nil {
		return 0, err
	}

	return len(data), nil
}

// SaveNames is Save for parallel slices. It fails with errs.ErrLengthMismatch when the
// slices differ in length.
func SaveNames(arrays []*ndarray.Array, names []string, fileNameNoExtension string, f format.DataFormat, opts ...Option) error {
	if len(arrays) != len(names) {
		return fmt.Errorf("%w: %d arrays, %d names", errs.ErrLengthMismatch, len(arrays), len(names))
	}

	named := make([]Named, len(arrays))
	for i := range arrays {
		named[i] = Named{Array: arrays[i], Name: names[i]}
	}

	return Save(named, fileNameNoExtension, f, opts...)
}

// SaveOne writes a single array.
func SaveOne(a *ndarray.Array, name, fileNameNoExtension string, f format.DataFormat, opts ...Option) error {
	return Save([]Named{{Array: a, Name: name}}, fileNameNoExtension, f, opts...)
}

// Load reads the named arrays from fileNameNoExtension + "." + f, in the order requested.
//
// A missing file fails with errs.ErrFileNotFound. A name the archive does not hold loads
// as an empty array.
func Load(names []string, fileNameNoExtension string, f format.DataFormat, opts ...Option) ([]*ndarray.Array, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	path := Path(fileNameNoExtension, f)
	arrays, err := load(cfg, names, path, f)
	if err != nil {
		cfg.metrics.RecordErrorByComponent(metrics.ComponentArchive, metrics.ErrorType(err))
		return nil, err
	}

	cfg.metrics.RecordArchiveLoad(f.String())

	return arrays, nil
}

func load(cfg *Config, names []string, path string, f format.DataFormat) ([]*ndarray.Array, error) {
	factory, err := backendFor(f)
	if err != nil {
		return nil, err
	}

	data, err := fsutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	backend, err := factory(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	arrays := make([]*ndarray.Array, len(names))
	for i, name := range names {
		e, ok, err := backend.ReadNamed(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if !ok {
			cfg.logger.Warn(context.Background(), "array not in archive",
				logger.String("path", path), logger.String("name", name))
			arrays[i] = ndarray.New()

			continue
		}

		a, err := fromEntry(e)
		if err != nil {
			return nil, fmt.Errorf("%s: array %q: %w", path, name, err)
		}
		arrays[i] = a
	}

	return arrays, nil
}

// LoadOne reads a single array.
func LoadOne(name, fileNameNoExtension string, f format.DataFormat, opts ...Option) (*ndarray.Array, error) {
	arrays, err := Load([]string{name}, fileNameNoExtension, f, opts...)
	if err != nil {
		return nil, err
	}

	return arrays[0], nil
}

// toEntry converts a to its stored form; an empty array becomes the placeholder.
func toEntry(a *ndarray.Array) Entry {
	if a.Empty() {
		return Entry{Sizes: []int{}, Data: []float32{}}
	}

	return Entry{Sizes: a.Dims(), Data: a.Data()}
}

func fromEntry(e Entry) (*ndarray.Array, error) {
	if len(e.Sizes) == 0 && len(e.Data) == 0 {
		return ndarray.New(), nil
	}

	data := e.Data
	if data == nil {
		data = []float32{}
	}

	return ndarray.FromSlice(data, e.Sizes...)
}
