package result

// Result - the outcome of a fallible computation: either a value or an
// error, never both. The zero value is Ok with a zero value inside.
type Result[T any] struct {
	value T
	err   error
}

// Ok - wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err - wraps a failure.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk - reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr - reports whether the result holds an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Unwrap - returns the value. Panics when the result holds an error.
func (r Result[T]) Unwrap() T {
	if r.err != nil {
		panic("result: unwrap of failed result: " + r.err.Error())
	}

	return r.value
}

// UnwrapErr - returns the error. Panics when the result holds a value.
func (r Result[T]) UnwrapErr() error {
	if r.err == nil {
		panic("result: unwrap error of successful result")
	}

	return r.err
}

// Get - returns the value and the error, plain Go style.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}
