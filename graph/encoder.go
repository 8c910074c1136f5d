package graph

import (
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/revive/errs"
)

// Encoder converts object graphs into flat encodings.
//
// An Encoder is a cheap, immutable carrier of configuration; every Encode
// call owns a private reference table, so a single Encoder may be shared
// across goroutines. Encoding the same mutable graph from two goroutines
// without external locking is the caller's responsibility: the walk reads
// the graph but never writes to it.
type Encoder struct {
	cfg *Config
}

// NewEncoder creates an Encoder with the given options.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode walks root depth-first, builds the reference table, and returns
// the flat bytes. Any error aborts the whole call; nothing partially
// encoded is returned.
func (e *Encoder) Encode(root any) ([]byte, error) {
	w := &walker{
		cfg:   e.cfg,
		slots: make(map[nodeKey]int),
	}

	enc, err := w.visit(reflect.ValueOf(root))
	if err != nil {
		return nil, err
	}

	// A composite root lives in the table (slot 0); an atomic root is its
	// own document.
	var payload any
	if len(w.table) > 0 {
		payload = w.table
	} else {
		payload = enc
	}

	data, err := e.cfg.codec.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return e.cfg.comp.Compress(data)
}

// walker holds the per-call state of one encoding pass: the table under
// construction and the side table mapping node identity to slot index.
type walker struct {
	cfg   *Config
	table []any
	slots map[nodeKey]int
}

func (w *walker) visit(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Type() {
	case undefinedType:
		return w.cfg.refEncoding(undefinedSlot), nil
	case timeType:
		t, _ := rv.Interface().(time.Time)

		return w.cfg.builderEncoding(builderTime, t.Format(time.RFC3339Nano)), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			// Codecs normalize integers to int64; larger values travel as a
			// number builder so no codec rounds them through float64.
			return w.cfg.builderEncoding(builderNumber, strconv.FormatUint(u, 10)), nil
		}

		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return w.cfg.builderEncoding(builderNumber, nonFiniteString(f)), nil
		}

		return f, nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		elem := rv.Type().Elem()
		if elem.Kind() == reflect.Struct && elem != timeType && elem != undefinedType {
			return w.visitComposite(rv)
		}

		return w.visit(rv.Elem())
	case reflect.Struct:
		return w.visitComposite(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedKey, rv.Type())
		}

		return w.visitComposite(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return w.cfg.builderEncoding(builderBytes, base64.StdEncoding.EncodeToString(rv.Bytes())), nil
		}

		return w.visitComposite(rv)
	case reflect.Array:
		return w.visitComposite(rv)
	default:
		// Func, Chan, Complex, UnsafePointer: no structural representation.
		return nil, fmt.Errorf("%w: %s", errs.ErrUnencodable, rv.Kind())
	}
}

// visitComposite assigns a table slot to a composite on first visit and
// returns a reference encoding into that slot. The slot is claimed before
// children are visited; that single ordering constraint is what makes
// self-cycles and shared subtrees terminate.
func (w *walker) visitComposite(rv reflect.Value) (any, error) {
	key, hasID := identityOf(rv)
	if hasID {
		if slot, seen := w.slots[key]; seen {
			return w.cfg.refEncoding(slot), nil
		}
	}

	slot := len(w.table)
	w.table = append(w.table, nil)
	if hasID {
		w.slots[key] = slot
	}

	base := rv
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	var (
		built any
		err   error
	)
	switch base.Kind() {
	case reflect.Struct:
		built, err = w.copyStruct(base)
	case reflect.Map:
		built, err = w.copyMap(base)
	default: // Slice or Array
		built, err = w.copySequence(base)
	}
	if err != nil {
		return nil, err
	}
	w.table[slot] = built

	return w.cfg.refEncoding(slot), nil
}

// copyStruct builds the slot copy of a struct: a mapping of its exported
// fields plus, when reviving is enabled, a type tag naming the struct's
// registered type.
func (w *walker) copyStruct(rv reflect.Value) (map[string]any, error) {
	t := rv.Type()
	out := make(map[string]any, t.NumField()+1)

	if w.cfg.revive {
		name, err := w.tagFor(t)
		if err != nil {
			return nil, err
		}
		out[w.cfg.prefix] = name
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := fieldName(f)
		if skip {
			continue
		}
		if w.cfg.isReserved(name) {
			return nil, fmt.Errorf("%w: field %q of %s", errs.ErrReservedKey, name, t)
		}

		fv := rv.Field(i)
		if w.cfg.filter != nil && !w.cfg.filter(t, name, fv.Interface()) {
			continue
		}

		child, err := w.visit(fv)
		if err != nil {
			return nil, err
		}
		out[name] = child
	}

	return out, nil
}

// tagFor resolves the type tag for a struct type and verifies the
// resolver's round trip: the name must construct exactly this type back.
func (w *walker) tagFor(t reflect.Type) (string, error) {
	if t.Name() == "" {
		return "", fmt.Errorf("%w: %s", errs.ErrAnonymousType, t)
	}
	if w.cfg.resolver == nil {
		return "", fmt.Errorf("%w: no resolver configured, cannot tag %s", errs.ErrUnresolvedType, t)
	}

	name, ok := w.cfg.resolver.NameOf(t)
	if !ok {
		return "", fmt.Errorf("%w: %s", errs.ErrUnresolvedType, t)
	}

	back, ok := w.cfg.resolver.TypeOf(name)
	if !ok || back != t {
		return "", fmt.Errorf("%w: %q does not construct %s", errs.ErrConstructorMismatch, name, t)
	}

	return name, nil
}

func (w *walker) copyMap(rv reflect.Value) (map[string]any, error) {
	out := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		if w.cfg.isReserved(k) {
			return nil, fmt.Errorf("%w: map key %q", errs.ErrReservedKey, k)
		}
		if w.cfg.filter != nil && !w.cfg.filter(rv.Type(), k, iter.Value().Interface()) {
			continue
		}

		child, err := w.visit(iter.Value())
		if err != nil {
			return nil, err
		}
		out[k] = child
	}

	return out, nil
}

func (w *walker) copySequence(rv reflect.Value) ([]any, error) {
	out := make([]any, rv.Len())

	for i := 0; i < rv.Len(); i++ {
		child, err := w.visit(rv.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = child
	}

	return out, nil
}

// fieldName resolves a struct field's wire name from its revive tag,
// falling back to the field name. A "-" tag skips the field.
func fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("revive")
	if tag == "" {
		return f.Name, false
	}
	if tag == "-" {
		return "", true
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name, false
	}

	return tag, false
}
