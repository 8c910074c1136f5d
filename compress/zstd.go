package compress

// ZstdCompressor provides Zstandard compression for encoded payloads.
//
// Use it when encoded graphs are archived or shipped over constrained
// links; the text codecs in particular compress well. The pure-Go
// implementation is the default; build with the cgozstd tag to use the
// cgo-backed gozstd bindings instead.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
