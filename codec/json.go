package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arloliu/revive/errs"
	"github.com/arloliu/revive/internal/pool"
)

// JSONCodec is the default flat-structure codec, backed by encoding/json.
//
// Numbers are decoded with json.Number and normalized to int64 when the
// literal has no fraction or exponent, so reference slot indices survive the
// round trip as integers instead of floats.
type JSONCodec struct{}

var _ Codec = JSONCodec{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() JSONCodec {
	return JSONCodec{}
}

// Marshal encodes the tree as compact JSON using a pooled buffer.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// Copy out: the pooled buffer is reused after return. Encode appends a
	// trailing newline; strip it.
	b := buf.Bytes()
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	out := make([]byte, len(b))
	copy(out, b)

	return out, nil
}

// Unmarshal parses JSON into a normalized tree.
func (JSONCodec) Unmarshal(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedEncoding, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", errs.ErrMalformedEncoding)
	}

	return normalizeTree(v, normalizeJSONScalar)
}

func normalizeJSONScalar(v any) (any, error) {
	num, ok := v.(json.Number)
	if !ok {
		return v, nil
	}

	s := num.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := num.Int64(); err == nil {
			return i, nil
		}
	}

	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", errs.ErrMalformedEncoding, s)
	}

	return f, nil
}
