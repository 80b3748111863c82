package lazymap

import (
	"context"
	"iter"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Windows is an iterator over the result windows of a stream, returned by LazyIMap.
// Each call to Next draws the next window of elements from the producer, transforms them
// using the worker pool, and waits until all of them are done.
//
// The worker pool is started by the first call to Next, and shut down when the iterator is
// exhausted, fails, or is closed. Callers that stop iterating early must call Close.
// A Windows must not be used from multiple goroutines concurrently.
type Windows[U any] struct {
	parent context.Context
	cfg    *config

	// set by the first call to Next
	ctx    context.Context
	cancel context.CancelCauseFunc

	// step draws and transforms the next window, returning nil when the producer is exhausted.
	step func(ctx context.Context, cancel context.CancelCauseFunc, pool Pool) ([]U, error)

	pool   Pool
	window []U
	count  uint64
	done   bool
	err    error
}

// LazyIMap returns an iterator over the result windows of calling transform for each element produced by prod.
// If the options are invalid, it returns a ConfigError, and nothing is started.
// The producer and the worker pool are started by the first call to Next. Once Next has been called,
// the Windows holds resources until it is exhausted, fails, or is closed, so callers that may stop
// early should defer Close.
func LazyIMap[T any, U any](ctx context.Context, prod ProducerFunc[T], transform TransformFunc[T, U], opts ...Option) (*Windows[U], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var ch <-chan T

	index := uint64(0)

	step := func(ctx context.Context, cancel context.CancelCauseFunc, pool Pool) ([]U, error) {
		// the producer may have failed right after the previous window was drawn
		if contextDone(ctx) {
			return nil, context.Cause(ctx)
		}

		if ch == nil {
			ch = prod(ctx, cancel)
		}

		window, interrupted := drawWindow(ctx, ch, cfg.windowSize)
		if interrupted {
			return nil, context.Cause(ctx)
		}

		if len(window) == 0 {
			return nil, nil
		}

		results, err := parallelMap(ctx, pool, transform, window, index)
		if err != nil {
			return nil, err
		}

		index += uint64(len(window))

		return results, nil
	}

	return &Windows[U]{
		parent: ctx,
		cfg:    cfg,
		step:   step,
	}, nil
}

// Next computes the next result window, which is then available through Window.
// It returns false when the producer is exhausted, or when an error occurred; Err
// distinguishes the two cases.
func (w *Windows[U]) Next() bool {
	if w.done {
		return false
	}

	if w.pool == nil {
		w.ctx, w.cancel = context.WithCancelCause(w.parent)

		pool, err := w.cfg.newPool(w.cfg.workers)
		if err != nil {
			w.finish(poolError("create", err))
			return false
		}

		w.pool = pool

		w.cfg.logger.Debug("windowed map started",
			zap.Int("workers", w.cfg.workers),
			zap.Int("window_size", w.cfg.windowSize))
	}

	window, err := w.step(w.ctx, w.cancel, w.pool)
	if err != nil {
		w.cfg.logger.Debug("window failed", zap.Uint64("window", w.count), zap.Error(err))
		w.finish(err)
		return false
	}

	if window == nil {
		w.finish(nil)
		return false
	}

	w.cfg.logger.Debug("window done", zap.Uint64("window", w.count), zap.Int("items", len(window)))

	w.window = window
	w.count++

	return true
}

// Window returns the result window computed by the last call to Next.
// The results are in the same order as the elements produced by the producer.
func (w *Windows[U]) Window() []U {
	return w.window
}

// Index returns the 0-based index of the current window.
func (w *Windows[U]) Index() uint64 {
	if w.count == 0 {
		return 0
	}

	return w.count - 1
}

// Err returns the error that stopped the iteration, if any.
func (w *Windows[U]) Err() error {
	return w.err
}

// Close stops the iteration and shuts down the worker pool. It returns the same error as Err.
// Windows already returned by Window remain valid.
func (w *Windows[U]) Close() error {
	if !w.done {
		w.finish(nil)
	}

	return w.err
}

// All returns an iterator over the remaining result windows.
// If the iteration fails, the error is yielded last, with a nil window.
// The Windows is closed when the loop ends, including when it is exited early.
func (w *Windows[U]) All() iter.Seq2[[]U, error] {
	return func(yield func([]U, error) bool) {
		defer w.Close() //nolint:errcheck // reported through yield

		for w.Next() {
			if !yield(w.Window(), nil) {
				return
			}
		}

		if err := w.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// finish stops the producer and shuts down the pool before recording err.
func (w *Windows[U]) finish(err error) {
	w.done = true
	w.window = nil

	if w.cancel != nil {
		w.cancel(err)
	}

	if w.pool != nil {
		if closeErr := w.pool.Close(); closeErr != nil && err == nil {
			err = poolError("close", closeErr)
		}

		w.pool = nil

		w.cfg.logger.Debug("windowed map stopped", zap.Uint64("windows", w.count), zap.Error(err))
	}

	w.err = err
}

// drawWindow receives up to size elements from ch.
// The returned window is shorter than size if ch is closed or ctx is canceled first; interrupted
// reports the latter. A short window does not keep the capacity of a full one.
func drawWindow[T any](ctx context.Context, ch <-chan T, size int) ([]T, bool) {
	window := make([]T, 0, size)

	for len(window) < size {
		select {
		case elem, ok := <-ch:
			if !ok {
				return slices.Clip(window), contextDone(ctx)
			}

			window = append(window, elem)

		case <-ctx.Done():
			return slices.Clip(window), true
		}
	}

	return window, false
}
