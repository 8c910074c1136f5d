// Package options supplies the generic functional-option plumbing behind
// the encoder and decoder configuration surface: graph.Option is an
// instantiation of Option[T] over the shared wire configuration.
package options

// Option configures a target of type T. Options are applied in order, and
// the first failing option aborts construction of the target.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function into an Option[T].
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that can fail, such as a setter
// that validates a prefix or instantiates a codec.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply applies options to a target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError creates an option from a setter that cannot fail, like toggling
// a boolean flag.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
