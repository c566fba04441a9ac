// Package floatarray implements the self-describing binary format for N-dimensional float
// arrays.
//
// # Record Layout
//
// A record is a sequence of 4-byte IEEE-754 floats:
//
//	float32 ndims
//	float32 dims[ndims]
//	float32 data[dims[0] * dims[1] * ... * dims[ndims-1]]
//
// The dimension count and sizes are stored as floats, not integers, so that files written
// by older tools stay byte-compatible. Records use the host's native byte order unless an
// engine is chosen with WithEngine, WithLittleEndian or WithBigEndian; the format itself
// carries no byte-order marker.
//
// # Files
//
// SaveFile and LoadFile optionally wrap the whole record with a compression codec
// (WithCompression). The reader must be given the same compression type the writer used.
//
// # Basic Usage
//
//	data := floatarray.Encode(keypoints)
//	decoded, err := floatarray.Decode(data)
//
//	err = floatarray.SaveFile("frame_0001.bin", heatMaps, floatarray.WithCompression(format.CompressionZstd))
//	heatMaps, err = floatarray.LoadFile("frame_0001.bin", floatarray.WithCompression(format.CompressionZstd))
package floatarray
