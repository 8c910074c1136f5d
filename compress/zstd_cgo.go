//go:build cgozstd

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses the input data using the cgo-backed gozstd bindings.
func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data.
func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
