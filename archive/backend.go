package archive

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/format"
)

// Entry is the stored form of one array: its shape and its row-major values.
//
// The empty placeholder has no sizes and no data. Backends must write both slices even when
// they are empty so every stored array has the same structure.
type Entry struct {
	Sizes []int
	Data  []float32
}

// Backend encodes named entries into one archive document.
//
// A Backend is created per Save or Load and is not shared between goroutines.
type Backend interface {
	// WriteNamed stores e under name, replacing any previous entry with that name.
	WriteNamed(name string, e Entry) error
	// ReadNamed returns the entry stored under name; ok is false when there is none.
	ReadNamed(name string) (e Entry, ok bool, err error)
	// Encode renders every written entry.
	Encode() ([]byte, error)
}

// BackendFactory creates a Backend. data is nil when creating an archive for writing and
// holds the file content when loading.
type BackendFactory func(data []byte) (Backend, error)

var (
	backendsMu sync.RWMutex
	backends   = map[format.DataFormat]BackendFactory{
		format.Json: newJSONBackend,
		format.Xml:  newXMLBackend,
		format.Yaml: newYAMLBackend,
		format.Yml:  newYAMLBackend,
	}
)

// RegisterBackend replaces the backend used for f.
func RegisterBackend(f format.DataFormat, factory BackendFactory) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrUnknownFormat, f)
	}

	if factory == nil {
		return fmt.Errorf("nil backend factory for %s", f)
	}

	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[f] = factory

	return nil
}

func backendFor(f format.DataFormat) (BackendFactory, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	factory, ok := backends[f]
	if !ok {
		return nil, fmt.Errorf("%w: no archive backend for %s", errs.ErrUnknownFormat, f)
	}

	return factory, nil
}

// formatFloat renders v in the shortest form that reads back as the same float32.
func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// parseFloat accepts everything formatFloat produces, plus the "nan", "inf" and "-inf"
// spellings of non-finite values.
func parseFloat(s string) (float32, error) {
	switch s {
	case "nan", ".nan":
		return float32(math.NaN()), nil
	case "inf", ".inf":
		return float32(math.Inf(1)), nil
	case "-inf", "-.inf":
		return float32(math.Inf(-1)), nil
	}

	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: value %q: %w", errs.ErrSchemaViolation, s, err)
	}

	return float32(f), nil
}
