// Package compress provides compression codecs for binary float-array files.
//
// A float-array record (see package floatarray) is encoded first and may then be
// compressed as a whole before it reaches the disk. The uncompressed record layout is
// never changed by compression, so a decompressed payload is byte-identical to what an
// uncompressed save would have written.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): pass-through, the default
//   - Zstd (format.CompressionZstd): best ratio, good for archived sequences
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(record)
//	record, err = codec.Decompress(packed)
//
// # Zstd implementations
//
// The pure-Go klauspost/compress encoder is used by default. Building with
// `-tags gozstd` (and cgo enabled) switches to the valyala/gozstd bindings. Both produce
// standard zstd frames and can read each other's output.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool instances and are safe for
// concurrent use.
package compress
