package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// A raw LZ4 block does not record how large it decompresses to, so each block is
// prefixed with the payload length as a uvarint:
//
//	uvarint(len(payload)) | lz4 block
//
// Decompress then allocates exactly once and rejects blocks that decode to a different
// length.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// NewLZ4Compressor returns the LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress returns the length-prefixed LZ4 block of data, or nil for empty input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	prefix := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:prefix+n], nil
}

// Decompress decodes a block written by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, prefix := binary.Uvarint(data)
	if prefix <= 0 {
		return nil, fmt.Errorf("lz4 decompression failed: invalid length prefix")
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("lz4 decompression failed: %d bytes exceeds limit %d", size, MaxDecodedSize)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[prefix:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("lz4 decompression failed: block holds %d bytes, prefix says %d", n, size)
	}

	return buf, nil
}
