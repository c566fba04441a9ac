// Package ndarray provides the N-dimensional float32 array exchanged by every posefile
// reader and writer.
//
// An Array has a fixed shape and a mutable row-major buffer. Keypoint sets are stored as
// 3-D arrays shaped [person, part, channel] (channel being x, y, score) or as flat 1-D
// lists; other detector outputs (heat maps, part affinity fields) may use any rank.
//
//	a := ndarray.New(2, 25, 3) // two people, BODY_25, (x, y, score)
//	a.Set(a.Index(1, 0, 2), 0.93)
//	score := a.At(a.Index(1, 0, 2))
package ndarray

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/internal/hash"
)

// Array is an N-dimensional float32 tensor in row-major order.
//
// The zero value is an empty array with no dimensions.
type Array struct {
	dims []int
	data []float32
}

// New creates a zero-filled array with the given dimensions.
//
// Negative dimensions are treated as zero. New() with no dimensions returns an empty array.
func New(dims ...int) *Array {
	a := &Array{dims: make([]int, len(dims))}
	for i, d := range dims {
		a.dims[i] = max(d, 0)
	}
	a.data = make([]float32, volumeOf(a.dims))

	return a
}

// FromSlice wraps data in an array with the given dimensions without copying.
//
// Returns errs.ErrSchemaViolation if a dimension is negative or len(data) differs from
// the product of dims.
func FromSlice(data []float32, dims ...int) (*Array, error) {
	for i, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("%w: dimension %d is negative (%d)", errs.ErrSchemaViolation, i, d)
		}
	}

	volume := volumeOf(dims)
	if len(data) != volume {
		return nil, fmt.Errorf("%w: shape %v needs %d values, got %d", errs.ErrSchemaViolation, dims, volume, len(data))
	}

	return &Array{dims: append([]int(nil), dims...), data: data}, nil
}

// MustFromSlice is like FromSlice but panics on error. Intended for tests and literals.
func MustFromSlice(data []float32, dims ...int) *Array {
	a, err := FromSlice(data, dims...)
	if err != nil {
		panic(err)
	}

	return a
}

func volumeOf(dims []int) int {
	if len(dims) == 0 {
		return 0
	}

	volume := 1
	for _, d := range dims {
		volume *= d
	}

	return volume
}

// NumDims returns the number of dimensions.
func (a *Array) NumDims() int {
	if a == nil {
		return 0
	}

	return len(a.dims)
}

// SizeAt returns the size of the given axis, or 0 if the axis does not exist.
func (a *Array) SizeAt(axis int) int {
	if a == nil || axis < 0 || axis >= len(a.dims) {
		return 0
	}

	return a.dims[axis]
}

// Dims returns a copy of the shape.
func (a *Array) Dims() []int {
	if a == nil {
		return nil
	}

	return append([]int(nil), a.dims...)
}

// Volume returns the number of elements, i.e. the product of all dimensions.
func (a *Array) Volume() int {
	if a == nil {
		return 0
	}

	return len(a.data)
}

// Empty reports whether the array holds no elements.
func (a *Array) Empty() bool {
	return a.Volume() == 0
}

// At returns the element at flat index i.
func (a *Array) At(i int) float32 {
	return a.data[i]
}

// Set stores v at flat index i.
func (a *Array) Set(i int, v float32) {
	a.data[i] = v
}

// Index converts per-axis coordinates into a flat row-major index.
// Panics if the number of coordinates differs from NumDims.
func (a *Array) Index(coords ...int) int {
	if len(coords) != len(a.dims) {
		panic(fmt.Sprintf("ndarray: %d coordinates for a %d-D array", len(coords), len(a.dims)))
	}

	idx := 0
	for axis, c := range coords {
		idx = idx*a.dims[axis] + c
	}

	return idx
}

// Data returns the underlying row-major buffer. Writes through it modify the array.
func (a *Array) Data() []float32 {
	if a == nil {
		return nil
	}

	return a.data
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	if a == nil {
		return nil
	}

	return &Array{
		dims: append([]int(nil), a.dims...),
		data: append([]float32(nil), a.data...),
	}
}

// Equal reports whether both arrays have the same shape and bit-identical values.
//
// Values are compared by their IEEE-754 bits, so NaN equals NaN and 0 differs from -0.
// Two empty arrays are equal only if their shapes match.
func (a *Array) Equal(other *Array) bool {
	if a.NumDims() != other.NumDims() || a.Volume() != other.Volume() {
		return false
	}

	for i, _n := 0, a.NumDims(); i < _n; i++ {
		if a.dims[i] != other.dims[i] {
			return false
		}
	}

	for i, v := range a.Data() {
		if math.Float32bits(v) != math.Float32bits(other.data[i]) {
			return false
		}
	}

	return true
}

// Fingerprint returns an xxHash64 digest of the shape and values.
func (a *Array) Fingerprint() uint64 {
	return hash.Array(a.Dims(), a.Data())
}

// String renders the shape, e.g. "Array[2x25x3]" or "Array[]" for an empty array.
func (a *Array) String() string {
	dims := a.Dims()
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprint(d)
	}

	return "Array[" + strings.Join(parts, "x") + "]"
}
