// Package codec provides the flat-structure codecs that turn a reference
// table (a tree of maps, sequences, and scalars) into bytes and back.
//
// The graph encoder and decoder treat this package as a leaf dependency:
// they hand over a fully built tree and expect a normalized tree back.
// Normalized means mappings are map[string]any, sequences are []any, and
// scalars are int64, float64, string, bool, or nil, regardless of which
// codec produced the bytes.
package codec

import (
	"fmt"

	"github.com/arloliu/revive/errs"
	"github.com/arloliu/revive/format"
)

// Codec marshals a flat tree to bytes and parses bytes back into a
// normalized flat tree.
type Codec interface {
	// Marshal encodes a tree of maps/sequences/scalars to bytes.
	// The returned slice is newly allocated and owned by the caller.
	Marshal(v any) ([]byte, error)

	// Unmarshal parses bytes into a normalized tree. Inputs that do not
	// parse report errs.ErrMalformedEncoding.
	Unmarshal(data []byte) (any, error)
}

// CreateCodec is a factory function that creates a Codec for the specified
// codec type.
func CreateCodec(codecType format.CodecType) (Codec, error) {
	switch codecType {
	case format.CodecJSON:
		return NewJSONCodec(), nil
	case format.CodecCBOR:
		return NewCBORCodec(), nil
	case format.CodecYAML:
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec type: %s", codecType)
	}
}

// normalizeTree walks a decoded tree, applying scalar to every leaf and
// rebuilding mappings/sequences with normalized children. Mappings with
// non-string keys are rejected; the wire format never produces them.
func normalizeTree(v any, scalar func(any) (any, error)) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			norm, err := normalizeTree(child, scalar)
			if err != nil {
				return nil, err
			}
			t[k] = norm
		}

		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string mapping key %v", errs.ErrMalformedEncoding, k)
			}
			norm, err := normalizeTree(child, scalar)
			if err != nil {
				return nil, err
			}
			out[key] = norm
		}

		return out, nil
	case []any:
		for i, child := range t {
			norm, err := normalizeTree(child, scalar)
			if err != nil {
				return nil, err
			}
			t[i] = norm
		}

		return t, nil
	default:
		return scalar(v)
	}
}
