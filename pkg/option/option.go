package option

// Option - a value that is explicitly present or absent. The zero
// value is None, so a present zero (Some(0), Some("")) stays
// distinguishable from no value at all.
type Option[T any] struct {
	value   T
	present bool
}

// Some - wraps a present value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

// None - returns the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome - reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.present
}

// IsNone - reports whether the value is absent.
func (o Option[T]) IsNone() bool {
	return !o.present
}

// Unwrap - returns the contained value. Panics when absent.
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic("option: unwrap of absent value")
	}

	return o.value
}

// UnwrapOr - returns the contained value or the given default when absent.
func (o Option[T]) UnwrapOr(def T) T {
	if !o.present {
		return def
	}

	return o.value
}

// Get - returns the value and a presence flag, comma-ok style.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}
