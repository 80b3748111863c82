package lazymap

import "context"

// CollectWindows returns an accumulator that collects the results of all windows into a single slice, in order.
func CollectWindows[U any]() AccumulatorFunc[U, []U] {
	return func(_ context.Context, _ context.CancelCauseFunc, window []U, _ uint64, acc []U) []U {
		return append(acc, window...)
	}
}

// CollectWindowSlices returns an accumulator that collects result windows into a slice of windows, in order.
func CollectWindowSlices[U any]() AccumulatorFunc[U, [][]U] {
	return func(_ context.Context, _ context.CancelCauseFunc, window []U, _ uint64, acc [][]U) [][]U {
		return append(acc, window)
	}
}

// LimitWindows returns an accumulator that calls reduce for at most max windows.
// Once max windows have been accumulated, it cancels the stream's context using ErrShortCircuit,
// so no further windows are drawn.
func LimitWindows[U any, A any](max uint64, reduce AccumulatorFunc[U, A]) AccumulatorFunc[U, A] {
	return func(ctx context.Context, cancel context.CancelCauseFunc, window []U, index uint64, acc A) A {
		if index >= max {
			cancel(ErrShortCircuit)
			return acc
		}

		acc = reduce(ctx, cancel, window, index, acc)

		if index+1 == max {
			cancel(ErrShortCircuit)
		}

		return acc
	}
}
