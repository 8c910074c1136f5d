// Package errs defines the sentinel errors shared by the revive packages.
//
// Every error aborts the whole Encode or Decode call that raised it; there
// are no retries and no partial results. Callers should match with
// errors.Is since most call sites wrap these sentinels with context.
package errs

import "errors"

var (
	// ErrUnencodable indicates a value with no structural representation
	// (function, channel, complex number, or unsafe pointer) was reached
	// during the encoding walk.
	ErrUnencodable = errors.New("value cannot be encoded")

	// ErrAnonymousType indicates a composite's runtime type has no name at
	// all (an anonymous struct) and therefore can never be revived.
	ErrAnonymousType = errors.New("anonymous type cannot be tagged")

	// ErrUnresolvedType indicates the resolver has no name for a non-default
	// runtime type.
	ErrUnresolvedType = errors.New("resolver has no name for type")

	// ErrConstructorMismatch indicates the resolver maps the type's name
	// back to a different type than the one being encoded.
	ErrConstructorMismatch = errors.New("type name resolves to a different type")

	// ErrMalformedEncoding indicates the flat bytes do not parse into the
	// expected atom or table shape.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrUnknownBuilder indicates a builder encoding names an unrecognized
	// reconstruction kind.
	ErrUnknownBuilder = errors.New("unknown builder kind")

	// ErrUnknownConstructor indicates a type tag names a type the resolver
	// cannot supply.
	ErrUnknownConstructor = errors.New("resolver has no type for tag")

	// ErrUnsupportedKey indicates a map with non-string keys was reached;
	// the flat codecs only admit string keys.
	ErrUnsupportedKey = errors.New("map key is not a string")

	// ErrReservedKey indicates an input field name collides with the
	// configured reference, build, or value key.
	ErrReservedKey = errors.New("field name collides with reserved key")

	// ErrInvalidPrefix indicates an empty or otherwise unusable prefix
	// option.
	ErrInvalidPrefix = errors.New("invalid prefix")

	// ErrInvalidTypeName indicates an empty registry name.
	ErrInvalidTypeName = errors.New("invalid type name")

	// ErrNotStruct indicates a registry candidate that is neither a struct
	// nor a pointer to one.
	ErrNotStruct = errors.New("registered type must be a struct")

	// ErrDuplicateName indicates a registry name already bound to a
	// different type.
	ErrDuplicateName = errors.New("type name already registered")
)
