package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 block compression, a faster Snappy extension.
//
// Files are written with s2.EncodeBetter: they are encoded once and may be decoded many
// times, and decoding speed does not depend on the encoder mode.
type S2Compressor struct{}

var _ Codec = S2Compressor{}

// NewS2Compressor returns the S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress returns the S2 block of data, or nil for empty input.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 (or Snappy) block. Blocks declaring more than MaxDecodedSize
// bytes are rejected before allocating.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("s2 decompression failed: %d bytes exceeds limit %d", size, MaxDecodedSize)
	}

	decoded, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return decoded, nil
}
