package format

type (
	CodecType       uint8
	CompressionType uint8
)

const (
	CodecJSON CodecType = 0x1 // CodecJSON represents the JSON flat-structure codec.
	CodecCBOR CodecType = 0x2 // CodecCBOR represents the CBOR flat-structure codec.
	CodecYAML CodecType = 0x3 // CodecYAML represents the YAML flat-structure codec.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CodecType) String() string {
	switch c {
	case CodecJSON:
		return "JSON"
	case CodecCBOR:
		return "CBOR"
	case CodecYAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
