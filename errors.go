package lazymap

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by errors returned for invalid options.
	ErrConfig = errors.New("invalid configuration")

	// ErrPool is matched by errors returned when the worker pool fails to start, accept work, or shut down.
	ErrPool = errors.New("worker pool failure")

	// ErrPoolClosed is returned when submitting a task to a pool that has been closed.
	ErrPoolClosed = errors.New("worker pool closed")
)

// A ConfigError reports an option that resolved to an invalid value.
type ConfigError struct {
	// Option is the name of the offending option.
	Option string

	// Value is the resolved value.
	Value int

	// Max is the largest allowed value, or 0 if there is no upper bound.
	Max int
}

// A TransformError reports that the transform failed for an element.
type TransformError struct {
	// Index is the 0-based index of the element, in the order produced by the upstream producer.
	Index uint64

	// Err is the error returned by the transform, or the recovered panic.
	Err error
}

// A PoolError reports a failure of the worker pool.
type PoolError struct {
	// Op is the pool operation that failed: "create", "submit", or "close".
	Op string

	Err error
}

// Error implements error.
func (e *ConfigError) Error() string {
	if e.Max > 0 && e.Value > e.Max {
		return fmt.Sprintf("invalid %s: %d, must be at most %d", e.Option, e.Value, e.Max)
	}

	return fmt.Sprintf("invalid %s: %d, must be at least 1", e.Option, e.Value)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Error implements error.
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform element %d: %v", e.Index, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// Error implements error.
func (e *PoolError) Error() string {
	return fmt.Sprintf("worker pool %s: %v", e.Op, e.Err)
}

func (e *PoolError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrPool.
func (e *PoolError) Is(target error) bool {
	return target == ErrPool
}

// poolError wraps err into a PoolError for op, unless it already is one.
func poolError(op string, err error) error {
	var poolErr *PoolError
	if errors.As(err, &poolErr) {
		return err
	}

	return &PoolError{
		Op:  op,
		Err: err,
	}
}
