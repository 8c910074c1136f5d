package resolver

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/arloliu/revive/errs"
	"github.com/arloliu/revive/internal/hash"
)

// Registry is an explicit name-to-type table implementing Resolver.
//
// Entries are bucketed by the xxHash64 of the name for cheap lookups; the
// stored name is verified on every hit, and names whose hashes collide are
// kept in an exact-name overflow table, so collisions degrade to a map
// lookup instead of misresolving.
//
// Registry is safe for concurrent use. Registration is typically done once
// at startup, lookups happen on every encode and decode of a tagged
// composite.
type Registry struct {
	mu       sync.RWMutex
	byHash   map[uint64]regEntry
	overflow map[string]regEntry // names whose hash collided with an earlier entry
	names    map[reflect.Type]string
}

type regEntry struct {
	name  string
	rtype reflect.Type
}

var _ Resolver = (*Registry)(nil)

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		byHash:   make(map[uint64]regEntry),
		overflow: make(map[string]regEntry),
		names:    make(map[reflect.Type]string),
	}
}

// Register binds a stable name to the struct type of value.
//
// The value may be a struct or a pointer to one; the pointer is stripped so
// both spellings register the same type. Registering the same name/type
// pair again is a no-op. Binding a name that is already taken by a
// different type returns ErrDuplicateName, and binding a second name to an
// already-named type returns ErrDuplicateName as well: the resolver
// round-trip law requires both directions to be functions.
func (r *Registry) Register(name string, value any) error {
	if name == "" {
		return errs.ErrInvalidTypeName
	}

	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", errs.ErrNotStruct, value)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.lookup(name); ok {
		if existing == t {
			return nil
		}

		return fmt.Errorf("%w: %q is bound to %s", errs.ErrDuplicateName, name, existing)
	}
	if prev, ok := r.names[t]; ok && prev != name {
		return fmt.Errorf("%w: %s is already named %q", errs.ErrDuplicateName, t, prev)
	}

	entry := regEntry{name: name, rtype: t}
	h := hash.ID(name)
	if occupant, ok := r.byHash[h]; ok && occupant.name != name {
		// Hash collision between distinct names: keep the newcomer in the
		// exact-name overflow table.
		r.overflow[name] = entry
	} else {
		r.byHash[h] = entry
	}
	r.names[t] = name

	return nil
}

// MustRegister is like Register but panics on error. Intended for
// package-level registration of a fixed type set.
func (r *Registry) MustRegister(name string, value any) {
	if err := r.Register(name, value); err != nil {
		panic(err)
	}
}

// NameOf returns the registered name for t, stripping one level of pointer
// indirection so *T resolves like T.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.names[t]

	return name, ok
}

// TypeOf returns the struct type registered under name.
func (r *Registry) TypeOf(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lookup(name)
}

// lookup requires the caller to hold at least a read lock.
func (r *Registry) lookup(name string) (reflect.Type, bool) {
	if entry, ok := r.byHash[hash.ID(name)]; ok && entry.name == name {
		return entry.rtype, true
	}
	if entry, ok := r.overflow[name]; ok {
		return entry.rtype, true
	}

	return nil, false
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.names)
}
