package compress

import (
	"fmt"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/format"
)

// MaxDecodedSize bounds the output of every Decompress call: 1GiB, far above any float
// array a pose pipeline writes, so corrupt or hostile input cannot exhaust memory.
const MaxDecodedSize = 1 << 30

// Compressor shrinks one complete payload.
//
// For posefile the payload is one binary float-array record: a small float32 header
// followed by row-major float32 values. Keypoint records compress well because
// undetected parts are stored as runs of zeros.
type Compressor interface {
	// Compress returns a newly allocated compressed copy of data. data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
//	record, err := NewZstdCompressor().Decompress(fileBytes)
//
// Implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original payload. Corrupt input, input from another
	// algorithm and output above MaxDecodedSize are errors.
	Decompress(data []byte) ([]byte, error)
}

// Codec compresses and decompresses.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new codec for compressionType. target names what the codec is for
// and only appears in the error for an unknown type, which wraps
// errs.ErrUnsupportedCompression.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}
