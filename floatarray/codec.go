package floatarray

import (
	"fmt"
	"math"

	"github.com/arloliu/posefile/endian"
	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/ndarray"
	"github.com/arloliu/posefile/pkg/metrics"
)

const (
	// floatSize is the width of every value in a record, header included.
	floatSize = 4

	// maxDimension bounds a single decoded dimension. Header floats above it cannot describe
	// a real array and are rejected before any allocation.
	maxDimension = math.MaxInt32
)

// Codec encodes and decodes binary float-array records.
//
// A Codec is immutable after creation and safe for concurrent use.
type Codec struct {
	cfg *Config
}

// NewCodec creates a Codec with the given options.
func NewCodec(opts ...Option) (*Codec, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Codec{cfg: cfg}, nil
}

// Config returns the codec configuration.
func (c *Codec) Config() *Config {
	return c.cfg
}

// EncodedSize returns the record size of a in bytes.
func EncodedSize(a *ndarray.Array) int {
	return floatSize * (1 + a.NumDims() + a.Volume())
}

// Encode returns the record of a in a newly allocated slice.
func (c *Codec) Encode(a *ndarray.Array) []byte {
	return c.AppendEncode(make([]byte, 0, EncodedSize(a)), a)
}

// AppendEncode appends the record of a to dst and returns the extended slice.
//
// a is only read.
func (c *Codec) AppendEncode(dst []byte, a *ndarray.Array) []byte {
	engine := c.cfg.engine

	dst = endian.AppendFloat32(engine, dst, float32(a.NumDims()))
	for axis, _n := 0, a.NumDims(); axis < _n; axis++ {
		dst = endian.AppendFloat32(engine, dst, float32(a.SizeAt(axis)))
	}

	for _, v := range a.Data() {
		dst = endian.AppendFloat32(engine, dst, v)
	}

	c.cfg.metrics.RecordArrayEncoded()

	return dst
}

// Decode parses one record from the start of data. Bytes after the record are ignored.
//
// Dimension floats are truncated toward zero. Returns:
//   - errs.ErrTruncatedData if data is shorter than the header declares
//   - errs.ErrSchemaViolation if a header float is negative, NaN, infinite or too large
func (c *Codec) Decode(data []byte) (*ndarray.Array, error) {
	a, _, err := c.decode(data)
	if err != nil {
		c.cfg.metrics.RecordErrorByComponent(metrics.ComponentFloatArray, metrics.ErrorType(err))
		return nil, err
	}

	c.cfg.metrics.RecordArrayDecoded()

	return a, nil
}

// DecodeCount is Decode for callers that know how many elements the record must hold.
// A header whose volume differs from declaredElementCount fails with errs.ErrSchemaViolation.
func (c *Codec) DecodeCount(data []byte, declaredElementCount int) (*ndarray.Array, error) {
	header, err := c.readHeader(data)
	if err == nil && header.volume != declaredElementCount {
		err = fmt.Errorf("%w: header declares %d elements (shape %v), expected %d",
			errs.ErrSchemaViolation, header.volume, header.dims, declaredElementCount)
	}

	if err != nil {
		c.cfg.metrics.RecordErrorByComponent(metrics.ComponentFloatArray, metrics.ErrorType(err))
		return nil, err
	}

	return c.Decode(data)
}

// header is the decoded record prefix.
type header struct {
	dims   []int
	volume int
	size   int // header size in bytes
}

func (c *Codec) readHeader(data []byte) (header, error) {
	engine := c.cfg.engine

	if len(data) < floatSize {
		return header{}, fmt.Errorf("%w: need %d bytes for the dimension count, got %d",
			errs.ErrTruncatedData, floatSize, len(data))
	}

	ndims, err := headerInt(endian.Float32(engine, data), "dimension count")
	if err != nil {
		return header{}, err
	}

	size := floatSize * (1 + ndims)
	if ndims > len(data)/floatSize || len(data) < size {
		return header{}, fmt.Errorf("%w: need %d header bytes for %d dimensions, got %d",
			errs.ErrTruncatedData, size, ndims, len(data))
	}

	h := header{dims: make([]int, ndims), size: size}
	for i, _n := 0, ndims; i < _n; i++ {
		off := floatSize * (1 + i)
		d, err := headerInt(endian.Float32(engine, data[off:off+floatSize]), fmt.Sprintf("dimension %d", i))
		if err != nil {
			return header{}, err
		}
		h.dims[i] = d
	}

	h.volume, err = volume(h.dims)
	if err != nil {
		return header{}, err
	}

	return h, nil
}

func (c *Codec) decode(data []byte) (*ndarray.Array, int, error) {
	h, err := c.readHeader(data)
	if err != nil {
		return nil, 0, err
	}

	payload := data[h.size:]
	if h.volume > len(payload)/floatSize {
		return nil, 0, fmt.Errorf("%w: shape %v needs %d bytes, got %d",
			errs.ErrTruncatedData, h.dims, h.size+floatSize*h.volume, len(data))
	}

	engine := c.cfg.engine
	values := make([]float32, h.volume)
	for i := range values {
		off := i * floatSize
		values[i] = endian.Float32(engine, payload[off:off+floatSize])
	}

	a, err := ndarray.FromSlice(values, h.dims...)
	if err != nil {
		return nil, 0, err
	}

	return a, h.size + floatSize*h.volume, nil
}

// headerInt truncates a header float to a non-negative int.
func headerInt(f float32, what string) (int, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s is %v", errs.ErrSchemaViolation, what, f)
	}

	if v < 0 {
		return 0, fmt.Errorf("%w: %s is negative (%v)", errs.ErrSchemaViolation, what, f)
	}

	if v > maxDimension {
		return 0, fmt.Errorf("%w: %s %v exceeds %d", errs.ErrSchemaViolation, what, f, maxDimension)
	}

	return int(v), nil
}

// volume multiplies dims, treating no dimensions as an empty array. A product that would
// overflow int is reported as truncated data since no buffer can hold it.
func volume(dims []int) (int, error) {
	if len(dims) == 0 {
		return 0, nil
	}

	n := 1
	for _, d := range dims {
		if d == 0 {
			return 0, nil
		}
		if n > math.MaxInt/floatSize/d {
			return 0, fmt.Errorf("%w: shape %v overflows the addressable size", errs.ErrTruncatedData, dims)
		}
		n *= d
	}

	return n, nil
}
