package lazymap

import (
	"runtime"

	"go.uber.org/zap"
)

const (
	// DefaultWorkers is the number of workers used when WithWorkers is not given.
	DefaultWorkers = 1

	// MaxWorkers is the largest number of workers a request may resolve to.
	// It also bounds the default window size.
	MaxWorkers = 1 << 16
)

// numCPU returns the number of available CPUs.
var numCPU = runtime.NumCPU

// Option configures LazyMap, LazyIMap, EachWindow, and ReduceWindows.
type Option func(*config)

type config struct {
	workersRequest int
	windowSize     int
	windowSizeSet  bool
	logger         *zap.Logger
	newPool        PoolFactory

	// resolved
	workers int
}

// WithWorkers sets the number of workers that apply the transform concurrently.
//   - If n > 0, n workers are used.
//   - If n == 0, one worker per available CPU is used.
//   - If n < 0, the number of available CPUs minus n is used, that is, -n workers are added.
//
// The resolved number must be between 1 and MaxWorkers.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workersRequest = n
	}
}

// WithWindowSize sets the number of elements drawn from the producer at a time.
// By default, the window size is equal to the number of workers.
// Room for a full window is allocated up front, so n should be sized for the memory a window may use.
func WithWindowSize(n int) Option {
	return func(cfg *config) {
		cfg.windowSize = n
		cfg.windowSizeSet = true
	}
}

// WithLogger sets the logger used to report pool and window activity.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithPool replaces the default worker pool.
func WithPool(newPool PoolFactory) Option {
	return func(cfg *config) {
		cfg.newPool = newPool
	}
}

// ResolveWorkers returns the number of workers for the worker count request n, as described in WithWorkers.
// It returns a ConfigError if the result is less than 1 or greater than MaxWorkers.
func ResolveWorkers(n int) (int, error) {
	workers := n

	switch {
	case n == 0:
		workers = numCPU()
	case n < 0:
		workers = numCPU() - n
	}

	// a large negative request overflows into the negative range too
	if workers < 1 || workers > MaxWorkers {
		return 0, &ConfigError{
			Option: "workers",
			Value:  workers,
			Max:    MaxWorkers,
		}
	}

	return workers, nil
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		workersRequest: DefaultWorkers,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	workers, err := ResolveWorkers(cfg.workersRequest)
	if err != nil {
		return nil, err
	}

	cfg.workers = workers

	if !cfg.windowSizeSet {
		cfg.windowSize = workers
	}

	if cfg.windowSize < 1 {
		return nil, &ConfigError{
			Option: "window size",
			Value:  cfg.windowSize,
		}
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if cfg.newPool == nil {
		logger := cfg.logger
		cfg.newPool = func(workers int) (Pool, error) {
			return NewWorkerPool(workers, logger)
		}
	}

	return cfg, nil
}
