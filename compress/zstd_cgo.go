//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress returns a zstd frame produced by libzstd, or nil for empty input.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes zstd frames with libzstd. Output larger than MaxDecodedSize is
// rejected.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	if len(decompressed) > MaxDecodedSize {
		return nil, fmt.Errorf("zstd decompression failed: %d bytes exceeds limit %d", len(decompressed), MaxDecodedSize)
	}

	return decompressed, nil
}
