package graph

import (
	"reflect"
	"time"
)

// Undefined is the absence-of-value atom. It is distinct from nil and
// round-trips through an encoded graph: every occurrence decodes back to
// Undefined{}, encoded as a reference to the reserved slot -1.
type Undefined struct{}

func (Undefined) String() string {
	return "undefined"
}

// undefinedSlot is the reserved reference slot denoting absence-of-value.
// A real composite can never occupy it, so the encoding is unambiguous
// against a legitimate slot 0.
const undefinedSlot = -1

var (
	timeType      = reflect.TypeOf(time.Time{})
	undefinedType = reflect.TypeOf(Undefined{})
)

// nodeKey identifies a composite node for the duration of one encoding
// pass. Maps and pointers are identified by their data address; slices by
// data address plus length, since a slice and its prefix alias share a
// backing array but are distinct nodes. The type is part of the key: a
// pointer to a struct and a pointer to its first field share an address
// but are different nodes.
type nodeKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

const noLen = -1

// identityOf returns the identity key for a composite, or false for nodes
// with value semantics (structs, arrays, empty slices), which cannot be
// shared and get a fresh table slot on every visit.
func identityOf(rv reflect.Value) (nodeKey, bool) {
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		if rv.IsNil() {
			return nodeKey{}, false
		}

		return nodeKey{typ: rv.Type(), ptr: rv.Pointer(), len: noLen}, true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return nodeKey{}, false
		}

		return nodeKey{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	default:
		return nodeKey{}, false
	}
}
