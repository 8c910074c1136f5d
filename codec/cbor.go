package codec

import (
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/revive/errs"
)

// CBORCodec is a binary flat-structure codec backed by fxamacker/cbor.
//
// It produces canonical (deterministically ordered) documents and is the
// compact alternative to JSON when the encoded graph travels over the wire
// or into storage.
type CBORCodec struct {
	em cbor.EncMode
	dm cbor.DecMode
}

var _ Codec = (*CBORCodec)(nil)

// NewCBORCodec creates a new CBOR codec.
func NewCBORCodec() *CBORCodec {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create cbor encode mode: %v", err))
	}

	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSignedOrFail,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create cbor decode mode: %v", err))
	}

	return &CBORCodec{em: em, dm: dm}
}

// Marshal encodes the tree as canonical CBOR.
func (c *CBORCodec) Marshal(v any) ([]byte, error) {
	return c.em.Marshal(v)
}

// Unmarshal parses CBOR into a normalized tree.
func (c *CBORCodec) Unmarshal(data []byte) (any, error) {
	var v any
	if err := c.dm.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedEncoding, err)
	}

	return normalizeTree(v, normalizeCBORScalar)
}

func normalizeCBORScalar(v any) (any, error) {
	switch t := v.(type) {
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("%w: integer %d overflows int64", errs.ErrMalformedEncoding, t)
		}

		return int64(t), nil
	case int:
		return int64(t), nil
	case float32:
		return float64(t), nil
	default:
		return v, nil
	}
}
