package lazymap

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestCollectWindows(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	collect := CollectWindows[int]()

	ints := []int{}
	ints = collect(ctx, cancel, []int{1, 2}, 0, ints)
	ints = collect(ctx, cancel, []int{3, 4}, 1, ints)
	ints = collect(ctx, cancel, []int{5}, 2, ints)

	is.Equal(ints, []int{1, 2, 3, 4, 5})
}

func TestCollectWindowSlices(t *testing.T) {
	is := is.New(t)

	result, err := ReduceWindows(context.Background(), Produce([]int{1, 2, 3, 4, 5}), FuncTransform(square), nil,
		CollectWindowSlices[int](), WithWorkers(2), WithWindowSize(2))

	is.NoErr(err)
	is.Equal(result, [][]int{{1, 4}, {9, 16}, {25}})
}

func TestLimitWindows(t *testing.T) {
	is := is.New(t)

	prod := Generate(func(index uint64) (int, bool) {
		return int(index), true
	})

	result, err := ReduceWindows(context.Background(), prod, FuncTransform(square), nil,
		LimitWindows(2, CollectWindows[int]()), WithWorkers(3))

	is.NoErr(err)
	is.Equal(result, []int{0, 1, 4, 9, 16, 25})
}

func TestLimitWindows_Zero(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	limit := LimitWindows(0, CollectWindows[int]())

	ints := limit(ctx, cancel, []int{1}, 0, nil)

	is.Equal(len(ints), 0)
	is.True(errors.Is(context.Cause(ctx), ErrShortCircuit))
}

func TestLazyMap_ConcurrentOrder(t *testing.T) {
	is := is.New(t)

	source := []int{9, 4, 7, 1, 8, 2, 6, 3, 5, 0}

	result, err := LazyMap(context.Background(), Produce(source), Identity[int](), WithWorkers(4), WithWindowSize(3))
	is.NoErr(err)

	is.Equal(result, source)
}
