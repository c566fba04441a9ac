package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Array computes the xxHash64 of an N-dimensional float32 array.
//
// The digest covers the dimension count, every dimension and the IEEE-754 bits of every
// value, each as little-endian uint32/uint64, so two arrays with the same values but
// different shapes hash differently.
func Array(dims []int, data []float32) uint64 {
	d := xxhash.New()

	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(len(dims)))
	_, _ = d.Write(scratch[:])
	for _, dim := range dims {
		binary.LittleEndian.PutUint64(scratch[:], uint64(dim))
		_, _ = d.Write(scratch[:])
	}

	for _, v := range data {
		binary.LittleEndian.PutUint32(scratch[:4], math.Float32bits(v))
		_, _ = d.Write(scratch[:4])
	}

	return d.Sum64()
}
