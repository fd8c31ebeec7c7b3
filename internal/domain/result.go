package domain

// Result is a minimal Ok/Err container. Its only user is internal/ignore,
// whose NewPattern returns a Result; NewPatternSet checks each one in its
// own loop and stops at the first error, and Collect currently has no
// caller. The rest of the core uses plain (T, error) returns; see
// SPEC_FULL.md's Open Question decisions.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err wraps a failure.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the Result holds a value.
func (r Result[T]) IsOk() bool { return r.err == nil }

// IsErr reports whether the Result holds an error.
func (r Result[T]) IsErr() bool { return r.err != nil }

// Unwrap returns the value, or panics if the Result holds an error.
func (r Result[T]) Unwrap() T {
	if r.err != nil {
		panic("domain.Result: Unwrap called on Err: " + r.err.Error())
	}
	return r.value
}

// UnwrapErr returns the error, or nil if the Result holds a value.
func (r Result[T]) UnwrapErr() error { return r.err }

// Collect aggregates a slice of Results into one: the first Err short-
// circuits, otherwise all values are returned in order.
func Collect[T any](results []Result[T]) ([]T, error) {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.IsErr() {
			return nil, r.UnwrapErr()
		}
		values = append(values, r.value)
	}
	return values, nil
}
