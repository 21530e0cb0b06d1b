package compress

// ZstdCompressor provides Zstandard compression for snapshot payloads.
//
// It favors ratio over speed, which suits snapshots kept for later inspection
// or sent over constrained links. The backend is chosen at build time, see
// the package documentation.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
