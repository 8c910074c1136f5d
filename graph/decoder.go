package graph

import (
	"fmt"

	"github.com/arloliu/revive/errs"
)

// Decoder reconstructs object graphs from flat encodings produced with the
// same configuration (prefix, codec, compression, resolver).
//
// Like Encoder, a Decoder is an immutable carrier of configuration; every
// Decode call rebuilds its own private reference table.
type Decoder struct {
	cfg *Config
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Decode parses flat bytes back into a value. A top-level sequence is a
// reference table with the root at slot 0; a top-level mapping must be a
// builder encoding or the absence-of-value reference; anything else is the
// atomic root itself.
func (d *Decoder) Decode(data []byte) (any, error) {
	raw, err := d.cfg.comp.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedEncoding, err)
	}

	payload, err := d.cfg.codec.Unmarshal(raw)
	if err != nil {
		return nil, err
	}

	switch p := payload.(type) {
	case []any:
		return d.decodeTable(p)
	case map[string]any:
		return d.decodeRootEncoding(p)
	default:
		return p, nil
	}
}

// decodeRootEncoding handles the non-table mapping roots: the undefined
// reference and builder encodings. A plain mapping can never appear here;
// composite roots always travel through the table.
func (d *Decoder) decodeRootEncoding(m map[string]any) (any, error) {
	if slot, ok := refSlot(d.cfg, m); ok {
		if slot == undefinedSlot {
			return Undefined{}, nil
		}

		return nil, fmt.Errorf("%w: reference to slot %d without a table", errs.ErrMalformedEncoding, slot)
	}

	if kindRaw, ok := m[d.cfg.buildKey]; ok {
		kind, isStr := kindRaw.(string)
		if !isStr {
			return nil, fmt.Errorf("%w: builder kind is %T, not string", errs.ErrMalformedEncoding, kindRaw)
		}

		return d.cfg.runBuilder(kind, m[d.cfg.valueKey])
	}

	return nil, fmt.Errorf("%w: top-level mapping is neither a reference nor a builder", errs.ErrMalformedEncoding)
}

// decodeTable rebuilds the reference table in three passes: materialize
// every slot as its final container (typed struct, mapping, or sequence),
// populate children resolving reference and builder encodings in place,
// then finish the struct-field assignments that copy or convert slot
// contents and therefore had to wait for full population.
//
// Materializing first is what preserves identity: a reference resolves
// directly to the slot's final value even when that slot's own children
// have not been populated yet, because references always point at slots,
// never at fields within them.
func (d *Decoder) decodeTable(slots []any) (any, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: empty reference table", errs.ErrMalformedEncoding)
	}

	t := newTable(d.cfg, slots)

	for i, raw := range slots {
		if err := t.materialize(i, raw); err != nil {
			return nil, err
		}
	}
	for i, raw := range slots {
		if err := t.populate(i, raw); err != nil {
			return nil, err
		}
	}
	for i := range slots {
		if err := t.finish(i); err != nil {
			return nil, err
		}
	}

	return t.out[0], nil
}
