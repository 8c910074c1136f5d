// Package resolver translates between runtime type identities and the
// stable names carried in encoded graphs.
//
// The graph encoder and decoder consume the Resolver interface only; any
// resolution strategy is admissible as long as the round-trip law holds:
// TypeOf(NameOf(t)) must return exactly t for every type the encoder is
// asked to tag. The law is a documented precondition of the core, not
// something the core re-verifies beyond its constructor-mismatch guard.
//
// Registry is the provided implementation: an explicit, thread-safe
// name-to-type table.
package resolver

import "reflect"

// Resolver supplies the type-name mapping consumed by both the encode and
// decode passes.
type Resolver interface {
	// NameOf returns the stable name for a runtime type, or false if the
	// type has no name known to this resolver.
	NameOf(t reflect.Type) (string, bool)

	// TypeOf returns the constructible type for a stable name, or false if
	// the name is not recognized.
	TypeOf(name string) (reflect.Type, bool)
}
