// Package compress provides optional compression for encoded graph
// payloads.
//
// Compression is a configuration choice, not self-describing: the same
// compression type must be used for the Encode call and the matching
// Decode call, like every other wire option.
package compress

import (
	"fmt"

	"github.com/arloliu/revive/format"
)

// Compressor compresses a complete encoded payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	// The returned slice is owned by the caller; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor for the same compression type.
type Decompressor interface {
	// Decompress decompresses data previously produced by the matching
	// Compressor. Returns an error if the data is corrupted or was
	// compressed with an incompatible algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the
// specified compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
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
		return nil, fmt.Errorf("invalid compression type: %s", compressionType)
	}
}
