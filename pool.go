package lazymap

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pool executes tasks on a fixed set of workers.
// A Pool is owned by a single LazyMap or LazyIMap call and closed when that call is done.
type Pool interface {
	// Submit hands task to a worker. It may block until a worker is free.
	Submit(task func()) error

	// Close stops accepting tasks and waits until all submitted tasks have finished.
	Close() error
}

// PoolFactory returns a new Pool with the given number of workers.
type PoolFactory func(workers int) (Pool, error)

// PoolStats are task counters of a WorkerPool.
type PoolStats struct {
	Submitted uint64
	Completed uint64
}

// WorkerPool is the default Pool, backed by a fixed number of goroutines.
type WorkerPool struct {
	workers int
	tasks   chan func()
	grp     *errgroup.Group
	logger  *zap.Logger

	// mu guards closed and sends on tasks
	mu     sync.RWMutex
	closed bool

	submitted atomic.Uint64
	completed atomic.Uint64
}

// NewWorkerPool starts a WorkerPool with the given number of workers.
func NewWorkerPool(workers int, logger *zap.Logger) (*WorkerPool, error) {
	if workers < 1 {
		return nil, &ConfigError{
			Option: "workers",
			Value:  workers,
		}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	pool := &WorkerPool{
		workers: workers,
		tasks:   make(chan func()),
		grp:     &errgroup.Group{},
		logger:  logger,
	}

	for i := 0; i < workers; i++ {
		pool.grp.Go(pool.work)
	}

	logger.Debug("worker pool started", zap.Int("workers", workers))

	return pool, nil
}

// work runs tasks until the pool is closed. A panicking task does not stop the worker,
// the first panic is reported by Close.
func (p *WorkerPool) work() error {
	var firstErr error

	for task := range p.tasks {
		if err := runTask(task); err != nil && firstErr == nil {
			firstErr = err
		}

		p.completed.Inc()
	}

	return firstErr
}

func runTask(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in task: %v", r)
		}
	}()

	task()

	return nil
}

// Submit implements Pool.
func (p *WorkerPool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	p.submitted.Inc()
	p.tasks <- task

	return nil
}

// Close implements Pool. Calling Close more than once is a no-op.
func (p *WorkerPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}

	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	err := p.grp.Wait()

	stats := p.Stats()
	p.logger.Debug("worker pool stopped",
		zap.Int("workers", p.workers),
		zap.Uint64("submitted", stats.Submitted),
		zap.Uint64("completed", stats.Completed))

	if err != nil {
		p.logger.Warn("worker pool stopped with error", zap.Error(err))
		return &PoolError{
			Op:  "close",
			Err: err,
		}
	}

	return nil
}

// Stats returns the pool's task counters.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
	}
}

// parallelMap calls transform for each element of window using pool, and returns the results
// in the same order. base is the source index of the first element of window.
// It blocks until all elements have been transformed. If the transform fails for any element,
// the error for the element with the lowest index is returned.
func parallelMap[T any, U any](ctx context.Context, pool Pool, transform TransformFunc[T, U], window []T, base uint64) ([]U, error) {
	results := make([]U, len(window))
	errs := make([]error, len(window))

	grp := sync.WaitGroup{}

	for i, elem := range window {
		grp.Add(1)

		err := pool.Submit(func() {
			defer grp.Done()

			results[i], errs[i] = callTransform(ctx, transform, elem, base+uint64(i))
		})

		if err != nil {
			grp.Done()
			grp.Wait()

			return nil, poolError("submit", err)
		}
	}

	grp.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &TransformError{
				Index: base + uint64(i),
				Err:   err,
			}
		}
	}

	return results, nil
}

func callTransform[T any, U any](ctx context.Context, transform TransformFunc[T, U], elem T, index uint64) (result U, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in transform: %v", r)
		}
	}()

	return transform(ctx, elem, index)
}
