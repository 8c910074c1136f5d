// Package revive serializes object graphs that encoding/json cannot:
// graphs with cycles, shared references, and values that need a custom
// reconstruction step (times, non-finite floats, raw bytes).
//
// The encoder flattens a graph into a reference table: each composite node
// gets a numbered slot, and every place that node appears is replaced by a
// reference into the table. Decoding rebuilds the table first, so shared
// nodes come back shared and cycles come back cyclic.
//
// # Basic Usage
//
// Register the struct types that should survive a round trip, then marshal
// and unmarshal:
//
//	import "github.com/arloliu/revive"
//
//	type Node struct {
//	    Name string
//	    Next *Node
//	}
//
//	func init() {
//	    revive.MustRegister("Node", Node{})
//	}
//
//	a := &Node{Name: "a"}
//	a.Next = a // self cycle
//
//	data, _ := revive.Marshal(a)
//	back, _ := revive.Unmarshal(data)
//	node := back.(*Node)
//	// node.Next == node
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the graph
// package, bound to a process-wide default type registry. For custom
// registries, prefixes, codecs, or compression, use the graph and resolver
// packages directly.
package revive

import (
	"github.com/arloliu/revive/graph"
	"github.com/arloliu/revive/internal/hash"
	"github.com/arloliu/revive/resolver"
)

// DefaultRegistry is the process-wide type registry used by Marshal,
// Unmarshal, Register, and MustRegister.
var DefaultRegistry = resolver.NewRegistry()

// Register binds a stable name to the struct type of value in the default
// registry. See resolver.Registry.Register for the binding rules.
func Register(name string, value any) error {
	return DefaultRegistry.Register(name, value)
}

// MustRegister is like Register but panics on error. Intended for
// package-level registration of a fixed type set:
//
//	func init() {
//	    revive.MustRegister("User", User{})
//	    revive.MustRegister("Team", Team{})
//	}
func MustRegister(name string, value any) {
	DefaultRegistry.MustRegister(name, value)
}

// Marshal encodes an object graph into flat bytes using the default
// registry. Options may override the codec, compression, prefix, or
// resolver; a resolver given in opts replaces the default registry.
//
// Marshal fails with errs.ErrUnencodable for values with no structural
// representation (funcs, channels, complex numbers), and with
// errs.ErrUnresolvedType for struct types missing from the registry.
func Marshal(root any, opts ...graph.Option) ([]byte, error) {
	enc, err := graph.NewEncoder(withDefaults(opts)...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(root)
}

// Unmarshal decodes flat bytes back into an object graph using the default
// registry. The options must match those given to Marshal; the encoding is
// deliberately not self-describing.
func Unmarshal(data []byte, opts ...graph.Option) (any, error) {
	dec, err := graph.NewDecoder(withDefaults(opts)...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// withDefaults prepends the default registry so caller options can still
// override it.
func withDefaults(opts []graph.Option) []graph.Option {
	merged := make([]graph.Option, 0, len(opts)+1)
	merged = append(merged, graph.WithResolver(DefaultRegistry))

	return append(merged, opts...)
}

// Fingerprint returns the 64-bit xxHash64 of an encoded payload. Useful as
// a cheap content key for caching or deduplicating encoded graphs.
func Fingerprint(data []byte) uint64 {
	return hash.Sum(data)
}
