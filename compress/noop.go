package compress

// NoOpCompressor bypasses data without compression. It is the default:
// structural codecs already produce compact documents for small graphs, and
// skipping compression keeps Encode/Decode allocation-free on this path.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// NewNoOpCompressor creates a new no-op compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is.
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
