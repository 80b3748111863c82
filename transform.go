package lazymap

import "context"

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// TransformFunc maps element elem to type U, or fails.
// The index is the 0-based index of elem, in the order produced by the upstream producer.
// A TransformFunc is called from multiple workers concurrently and must be safe for concurrent use.
type TransformFunc[T any, U any] func(ctx context.Context, elem T, index uint64) (U, error)

// FuncTransform returns a transform that calls fn for each element.
func FuncTransform[T any, U any](fn Function[T, U]) TransformFunc[T, U] {
	return func(_ context.Context, elem T, _ uint64) (U, error) {
		return fn(elem), nil
	}
}

// TryFuncTransform returns a transform that calls fn for each element, failing if fn returns an error.
func TryFuncTransform[T any, U any](fn func(elem T) (U, error)) TransformFunc[T, U] {
	return func(_ context.Context, elem T, _ uint64) (U, error) {
		return fn(elem)
	}
}

// Identity returns a transform that returns the same element it receives.
func Identity[T any]() TransformFunc[T, T] {
	return func(_ context.Context, elem T, _ uint64) (T, error) {
		return elem, nil
	}
}
