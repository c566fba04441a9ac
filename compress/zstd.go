package compress

// zstdLevel is the zstd compression level used by both implementations.
const zstdLevel = 3

// ZstdCompressor provides Zstandard compression.
//
// Zstd gives the best ratio of the built-in codecs and suits long recorded sequences of
// keypoint and heat-map arrays that are written once and read rarely.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor returns the Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
