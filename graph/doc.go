// Package graph implements a graph-preserving object serializer: it
// flattens an arbitrary, possibly cyclic object graph into a reference
// table, encodes the table with a structural codec, and reconstructs an
// isomorphic graph from those bytes.
//
// Two values that pointed at the same node before encoding point at the
// same reconstructed node after decoding. Cycles terminate because every
// composite is assigned a table slot before its children are visited, so a
// revisit short-circuits into a reference encoding. Values a structural
// codec cannot represent directly (absence-of-value, non-finite floats,
// times, raw bytes) travel as builder encodings and are reconstructed by
// kind.
//
// The encoder walks the caller's graph with a side table keyed by node
// identity and never mutates the input. Struct types are reattached on
// decode through a resolver.Resolver; see the resolver package.
//
// # Basic Usage
//
//	reg := resolver.NewRegistry()
//	reg.MustRegister("Node", Node{})
//
//	enc, _ := graph.NewEncoder(graph.WithResolver(reg))
//	dec, _ := graph.NewDecoder(graph.WithResolver(reg))
//
//	n := &Node{Label: "a"}
//	n.Next = n // cycles are fine
//
//	data, err := enc.Encode(n)
//	// ...
//	back, err := dec.Decode(data)
//
// Each Encode and Decode call owns a private reference table for its whole
// duration, so Encoder and Decoder values can be shared across goroutines;
// what must not be shared without locking is a mutable input graph being
// encoded concurrently.
package graph
