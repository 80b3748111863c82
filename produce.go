package lazymap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ProducerFunc returns a channel of elements for a stream.
// The channel is closed when there are no more elements, or when ctx is canceled.
// A producer that fails cancels the stream using cancel, with the failure as the cause.
type ProducerFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T

// FetchFunc returns the element with the given 0-based index.
// It returns io.EOF when there are no more elements.
type FetchFunc[T any] func(ctx context.Context, index uint64) (T, error)

// Produce returns a producer that produces the elements of the given slices, in order.
func Produce[T any](slices ...[]T) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for _, slice := range slices {
				for _, elem := range slice {
					if !send(ctx, outCh, elem) {
						return
					}
				}
			}
		}()

		return outCh
	}
}

// ProduceChannel returns a producer that produces the elements received through the given channels, in order.
func ProduceChannel[T any](channels ...<-chan T) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for _, ch := range channels {
				for elem := range ch {
					if !send(ctx, outCh, elem) {
						return
					}
				}
			}
		}()

		return outCh
	}
}

// ProduceSeq returns a producer that produces the elements yielded by seq, in order.
// seq is pulled one element at a time, and iteration stops when the stream's context is canceled.
func ProduceSeq[T any](seq iter.Seq[T]) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for elem := range seq {
				if !send(ctx, outCh, elem) {
					return
				}
			}
		}()

		return outCh
	}
}

// Generate returns a producer that produces the elements returned by next, until next returns false.
func Generate[T any](next func(index uint64) (T, bool)) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for index := uint64(0); ; index++ {
				if contextDone(ctx) {
					return
				}

				elem, ok := next(index)
				if !ok {
					return
				}

				if !send(ctx, outCh, elem) {
					return
				}
			}
		}()

		return outCh
	}
}

// Fetch returns a producer that produces the elements returned by fetch, until fetch returns io.EOF.
// If fetch returns any other error, the stream's context is canceled with that error as the cause.
func Fetch[T any](fetch FetchFunc[T]) ProducerFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for index := uint64(0); ; index++ {
				if contextDone(ctx) {
					return
				}

				elem, err := fetch(ctx, index)

				switch {
				case errors.Is(err, io.EOF):
					return

				case err != nil:
					cancel(fmt.Errorf("fetch element %d: %w", index, err))
					return
				}

				if !send(ctx, outCh, elem) {
					return
				}
			}
		}()

		return outCh
	}
}

// Join returns a producer that produces the elements produced by the given producers, in order.
// Each producer is only started once the previous one is exhausted.
func Join[T any](producers ...ProducerFunc[T]) ProducerFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for _, prod := range producers {
				for elem := range prod(ctx, cancel) {
					if !send(ctx, outCh, elem) {
						return
					}
				}

				if contextDone(ctx) {
					return
				}
			}
		}()

		return outCh
	}
}

// send sends elem to ch, returning false if ctx is canceled first.
func send[T any](ctx context.Context, ch chan<- T, elem T) bool {
	select {
	case ch <- elem:
		return true

	case <-ctx.Done():
		return false
	}
}

// contextDone returns true if ctx.Err() != nil.
func contextDone(ctx context.Context) bool {
	return ctx.Err() != nil
}
