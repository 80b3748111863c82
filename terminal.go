package lazymap

import (
	"context"
	"errors"
)

// WindowConsumerFunc consumes result window window.
// The index is the 0-based index of the window, in draw order.
type WindowConsumerFunc[U any] func(ctx context.Context, cancel context.CancelCauseFunc, window []U, index uint64)

// AccumulatorFunc folds result window window into the accumulator acc, returning acc, or a new accumulator.
// The index is the 0-based index of the window, in draw order.
type AccumulatorFunc[U any, A any] func(ctx context.Context, cancel context.CancelCauseFunc, window []U, index uint64, acc A) A

// ErrShortCircuit is a generic error used to short-circuit a stream by canceling its context.
var ErrShortCircuit = errors.New("short circuit")

// LazyMap calls transform for each element produced by prod, and returns all results in the order
// the elements were produced.
// Elements are drawn from prod one window at a time, and each window is transformed concurrently
// using a pool of workers. The next window is only drawn once the current one is done.
// If transform fails for any element, or prod cancels the stream's context, it returns a nil slice
// and the cause of the failure.
func LazyMap[T any, U any](ctx context.Context, prod ProducerFunc[T], transform TransformFunc[T, U], opts ...Option) ([]U, error) {
	result, err := ReduceWindows(ctx, prod, transform, []U{}, CollectWindows[U](), opts...)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ReduceWindows calls reduce for each result window of calling transform for each element produced by prod,
// folding it into accumulator acc, returning the final accumulator.
// If the iteration fails, or reduce cancels the stream's context, it returns the accumulator so far, and the
// cause of the failure.
func ReduceWindows[T any, U any, A any](ctx context.Context, prod ProducerFunc[T], transform TransformFunc[T, U], acc A,
	reduce AccumulatorFunc[U, A], opts ...Option,
) (A, error) {
	err := EachWindow(ctx, prod, transform, func(ctx context.Context, cancel context.CancelCauseFunc, window []U, index uint64) {
		acc = reduce(ctx, cancel, window, index, acc)
	}, opts...)

	return acc, err
}

// EachWindow calls each for each result window of calling transform for each element produced by prod.
// If the iteration fails, or each cancels the stream's context, it returns the cause of the failure.
// Canceling the stream's context with ErrShortCircuit stops the iteration without an error.
func EachWindow[T any, U any](ctx context.Context, prod ProducerFunc[T], transform TransformFunc[T, U],
	each WindowConsumerFunc[U], opts ...Option,
) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	windows, err := LazyIMap(ctx, prod, transform, opts...)
	if err != nil {
		return err
	}

	for windows.Next() {
		each(ctx, cancel, windows.Window(), windows.Index())

		if contextDone(ctx) {
			break
		}
	}

	if err := windows.Close(); err != nil && !contextDone(ctx) {
		return err
	}

	if !contextDone(ctx) {
		return nil
	}

	err = context.Cause(ctx)
	if errors.Is(err, ErrShortCircuit) {
		err = nil
	}

	return err
}

// CountWindows returns the number of result windows and the number of results of calling transform
// for each element produced by prod.
func CountWindows[T any, U any](ctx context.Context, prod ProducerFunc[T], transform TransformFunc[T, U], opts ...Option) (uint64, uint64, error) {
	windows := uint64(0)
	results := uint64(0)

	err := EachWindow(ctx, prod, transform, func(_ context.Context, _ context.CancelCauseFunc, window []U, _ uint64) {
		windows++
		results += uint64(len(window))
	}, opts...)

	return windows, results, err
}
