package graph

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/arloliu/revive/errs"
)

// Builder kinds. A builder encoding carries a kind name and a raw,
// reconstructable value; it bypasses the reference table entirely, so two
// equal times share value but never identity.
const (
	builderTime   = "time"
	builderNumber = "number"
	builderBytes  = "bytes"
)

// Canonical wire strings for non-finite floats.
const (
	wireNaN    = "NaN"
	wirePosInf = "Infinity"
	wireNegInf = "-Infinity"
)

// refEncoding returns the wire placeholder meaning "see table slot N".
func (c *Config) refEncoding(slot int) map[string]any {
	return map[string]any{c.prefix: slot}
}

// builderEncoding returns the wire placeholder meaning "reconstruct this
// kind from this raw value".
func (c *Config) builderEncoding(kind string, raw any) map[string]any {
	return map[string]any{c.buildKey: kind, c.valueKey: raw}
}

// refSlot recognizes a reference encoding: a mapping whose prefix key holds
// an integer. A prefix key holding a string is a type tag, not a reference.
func refSlot(c *Config, m map[string]any) (int, bool) {
	v, ok := m[c.prefix]
	if !ok {
		return 0, false
	}

	return asInt(v)
}

// asInt accepts the integer representations the codecs normalize to.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}

		return 0, false
	default:
		return 0, false
	}
}

// nonFiniteString returns the canonical wire form of a non-finite float.
func nonFiniteString(f float64) string {
	switch {
	case math.IsNaN(f):
		return wireNaN
	case math.IsInf(f, 1):
		return wirePosInf
	default:
		return wireNegInf
	}
}

// runBuilder reconstructs an atom from a builder encoding.
func (c *Config) runBuilder(kind string, raw any) (any, error) {
	switch kind {
	case builderTime:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: time builder value is %T, not string", errs.ErrMalformedEncoding, raw)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("%w: bad time %q: %v", errs.ErrMalformedEncoding, s, err)
		}

		return t, nil
	case builderNumber:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: number builder value is %T, not string", errs.ErrMalformedEncoding, raw)
		}
		switch s {
		case wireNaN:
			return math.NaN(), nil
		case wirePosInf:
			return math.Inf(1), nil
		case wireNegInf:
			return math.Inf(-1), nil
		default:
			// Unsigned integers beyond int64 range travel as decimal strings.
			if u, err := strconv.ParseUint(s, 10, 64); err == nil {
				return u, nil
			}

			return nil, fmt.Errorf("%w: bad number %q", errs.ErrMalformedEncoding, s)
		}
	case builderBytes:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: bytes builder value is %T, not string", errs.ErrMalformedEncoding, raw)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bad base64: %v", errs.ErrMalformedEncoding, err)
		}

		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownBuilder, kind)
	}
}
