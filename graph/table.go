package graph

import (
	"fmt"
	"reflect"

	"github.com/arloliu/revive/errs"
)

// structType records the reconstruction type of a retyped slot; the zero
// value marks an untyped slot.
type structType struct {
	rtype reflect.Type
}

// pendingField is a struct-field assignment that copies or converts slot
// contents and therefore must wait until every source slot is fully
// populated.
type pendingField struct {
	name string
	dst  reflect.Value
	val  any
}

// table is the per-Decode reference table being rebuilt: out[i] is slot i's
// final value, identical for every reference that names slot i.
type table struct {
	cfg      *Config
	raw      []any
	out      []any
	types    []structType
	pending  [][]pendingField
	finished []bool
}

func newTable(cfg *Config, slots []any) *table {
	return &table{
		cfg:      cfg,
		raw:      slots,
		out:      make([]any, len(slots)),
		types:    make([]structType, len(slots)),
		pending:  make([][]pendingField, len(slots)),
		finished: make([]bool, len(slots)),
	}
}

// materialize creates slot i's final, still-empty container. Type tags are
// consumed here: a tagged slot is allocated as a pointer to the resolver's
// type, so later references resolve straight to the typed value.
func (t *table) materialize(i int, raw any) error {
	switch s := raw.(type) {
	case []any:
		t.out[i] = make([]any, len(s))

		return nil
	case map[string]any:
		if slot, isRef := refSlot(t.cfg, s); isRef {
			return fmt.Errorf("%w: slot %d is a reference to %d, not a composite", errs.ErrMalformedEncoding, i, slot)
		}

		if t.cfg.revive {
			if tag, ok := s[t.cfg.prefix].(string); ok {
				if t.cfg.resolver == nil {
					return fmt.Errorf("%w: no resolver configured for tag %q", errs.ErrUnknownConstructor, tag)
				}
				rt, ok := t.cfg.resolver.TypeOf(tag)
				if !ok {
					return fmt.Errorf("%w: %q", errs.ErrUnknownConstructor, tag)
				}

				t.out[i] = reflect.New(rt).Interface()
				t.types[i] = structType{rtype: rt}

				return nil
			}
		}

		t.out[i] = make(map[string]any, len(s))

		return nil
	default:
		return fmt.Errorf("%w: slot %d holds %T, not a composite", errs.ErrMalformedEncoding, i, raw)
	}
}

// populate fills slot i's container from its raw form, resolving reference
// and builder encodings. Untyped containers store resolved values directly
// and are complete after this pass; typed struct slots may queue converting
// field assignments for the finish pass, since those copy slot contents
// instead of sharing them.
func (t *table) populate(i int, raw any) error {
	if rt := t.types[i].rtype; rt != nil {
		src, _ := raw.(map[string]any)

		return t.populateStruct(i, rt, src)
	}

	switch target := t.out[i].(type) {
	case []any:
		src, _ := raw.([]any)
		for j, child := range src {
			resolved, err := t.resolveValue(child)
			if err != nil {
				return err
			}
			target[j] = resolved
		}

		return nil
	case map[string]any:
		src, _ := raw.(map[string]any)
		for k, child := range src {
			if k == t.cfg.prefix {
				// A type tag on an untyped slot: reviving is disabled, so it
				// is not consulted. Cleanup strips it, default keeps it.
				if tag, isStr := child.(string); isStr {
					if !t.cfg.cleanup {
						target[k] = tag
					}
					continue
				}
			}

			resolved, err := t.resolveValue(child)
			if err != nil {
				return err
			}
			target[k] = resolved
		}

		return nil
	default:
		return fmt.Errorf("%w: slot %d has no container", errs.ErrMalformedEncoding, i)
	}
}

// populateStruct sets the retyped slot's fields by wire name. Fields absent
// from the encoding keep their zero values; wire entries with no matching
// field are ignored, mirroring how structural decoders treat unknown keys.
//
// Only assignments that preserve identity run here. Anything that copies a
// slot's contents (slice and map conversions, value-struct fields) is
// deferred, because the source slot may not be populated yet.
func (t *table) populateStruct(i int, rt reflect.Type, src map[string]any) error {
	target := reflect.ValueOf(t.out[i]).Elem()

	for k, child := range src {
		if k == t.cfg.prefix {
			continue // the consumed type tag
		}

		idx, ok := fieldIndex(rt, k)
		if !ok {
			continue
		}

		resolved, err := t.resolveValue(child)
		if err != nil {
			return err
		}

		dst := target.Field(idx)
		if resolved == nil {
			dst.SetZero()
			continue
		}
		if rv := reflect.ValueOf(resolved); rv.Type().AssignableTo(dst.Type()) {
			dst.Set(rv)
			continue
		}

		t.pending[i] = append(t.pending[i], pendingField{name: k, dst: dst, val: resolved})
	}

	return nil
}

// finish runs slot i's deferred field assignments. Slots referenced by i's
// encoding are finished first, so a copy always reads fully-populated
// sources; the finished flag breaks reference cycles, which can only occur
// through pointer fields that were already assigned in the populate pass.
func (t *table) finish(i int) error {
	if t.finished[i] {
		return nil
	}
	t.finished[i] = true

	if len(t.pending[i]) == 0 {
		return nil
	}

	for _, j := range collectRefs(t.cfg, t.raw[i], nil) {
		if j >= 0 && j < len(t.out) {
			if err := t.finish(j); err != nil {
				return err
			}
		}
	}

	rt := t.types[i].rtype
	for _, p := range t.pending[i] {
		if err := assignValue(p.dst, p.val); err != nil {
			return fmt.Errorf("field %q of %s: %w", p.name, rt, err)
		}
	}

	return nil
}

// collectRefs gathers every slot index referenced anywhere in a raw slot
// encoding. The raw tree comes straight from the codec, so it is finite.
func collectRefs(c *Config, raw any, acc []int) []int {
	switch node := raw.(type) {
	case map[string]any:
		if slot, ok := refSlot(c, node); ok {
			return append(acc, slot)
		}
		for _, child := range node {
			acc = collectRefs(c, child, acc)
		}
	case []any:
		for _, child := range node {
			acc = collectRefs(c, child, acc)
		}
	}

	return acc
}

// resolveValue replaces reference and builder encodings with their final
// values. Plain nested mappings and sequences are walked too, so documents
// hand-assembled by other producers resolve as long as their shape is
// valid.
func (t *table) resolveValue(v any) (any, error) {
	switch node := v.(type) {
	case map[string]any:
		if slot, ok := refSlot(t.cfg, node); ok {
			if slot == undefinedSlot {
				return Undefined{}, nil
			}
			if slot < 0 || slot >= len(t.out) {
				return nil, fmt.Errorf("%w: reference to slot %d of %d", errs.ErrMalformedEncoding, slot, len(t.out))
			}

			return t.out[slot], nil
		}

		if kindRaw, ok := node[t.cfg.buildKey]; ok {
			kind, isStr := kindRaw.(string)
			if !isStr {
				return nil, fmt.Errorf("%w: builder kind is %T, not string", errs.ErrMalformedEncoding, kindRaw)
			}

			return t.cfg.runBuilder(kind, node[t.cfg.valueKey])
		}

		for k, child := range node {
			resolved, err := t.resolveValue(child)
			if err != nil {
				return nil, err
			}
			node[k] = resolved
		}

		return node, nil
	case []any:
		for i, child := range node {
			resolved, err := t.resolveValue(child)
			if err != nil {
				return nil, err
			}
			node[i] = resolved
		}

		return node, nil
	default:
		return v, nil
	}
}

// fieldIndex finds the exported struct field whose wire name is k.
func fieldIndex(rt reflect.Type, k string) (int, bool) {
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := fieldName(f)
		if skip {
			continue
		}
		if name == k {
			return i, true
		}
	}

	return 0, false
}

// assignValue sets dst from a decoded value, converting between the
// codecs' normalized scalar types and the field's declared type.
func assignValue(dst reflect.Value, v any) error {
	if v == nil {
		dst.SetZero()

		return nil
	}

	rv := reflect.ValueOf(v)
	dt := dst.Type()

	if rv.Type().AssignableTo(dt) {
		dst.Set(rv)

		return nil
	}

	// Slots materialize struct values behind pointers; value fields take the
	// pointee.
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Type().Elem().AssignableTo(dt) {
		dst.Set(rv.Elem())

		return nil
	}

	switch dt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String, reflect.Bool:
		if convertCompatible(rv.Kind(), dt.Kind()) && rv.Type().ConvertibleTo(dt) {
			dst.Set(rv.Convert(dt))

			return nil
		}
	case reflect.Slice:
		if seq, ok := v.([]any); ok {
			out := reflect.MakeSlice(dt, len(seq), len(seq))
			for i, child := range seq {
				if err := assignValue(out.Index(i), child); err != nil {
					return err
				}
			}
			dst.Set(out)

			return nil
		}
	case reflect.Map:
		if src, ok := v.(map[string]any); ok && dt.Key().Kind() == reflect.String {
			out := reflect.MakeMapWithSize(dt, len(src))
			for k, child := range src {
				ev := reflect.New(dt.Elem()).Elem()
				if err := assignValue(ev, child); err != nil {
					return err
				}
				out.SetMapIndex(reflect.ValueOf(k).Convert(dt.Key()), ev)
			}
			dst.Set(out)

			return nil
		}
	}

	return fmt.Errorf("%w: cannot assign %T to %s", errs.ErrMalformedEncoding, v, dt)
}

// convertCompatible allows numeric-to-numeric conversion plus same-kind
// string and bool conversions for named types; everything else must be
// directly assignable.
func convertCompatible(src, dst reflect.Kind) bool {
	if isNumeric(src) && isNumeric(dst) {
		return true
	}

	return (src == reflect.String && dst == reflect.String) ||
		(src == reflect.Bool && dst == reflect.Bool)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
