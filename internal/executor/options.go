package executor

import "log/slog"

// Option is a functional option for configuring an Executor
type Option func(*options)

type options struct {
	logger   *slog.Logger
	policy   FailurePolicy
	observer Observer
	pin      bool
	poolSize int
	exit     func(code int)
}

// WithLogger sets the structured logger (nil means slog.Default())
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPolicy overrides the backend's default failure policy
func WithPolicy(policy FailurePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithObserver registers a callback invoked once per completed range.
// Worker ranges are reported from worker goroutines, concurrently, so the
// observer must be safe for concurrent use.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithPinning pins each thread-backend worker to one CPU of the process's
// affinity mask. Ignored by other backends.
func WithPinning(pin bool) Option {
	return func(o *options) {
		o.pin = pin
	}
}

// WithPoolSize sets the number of pool-backend workers (<= 0 means
// runtime.NumCPU()). Ignored by other backends.
func WithPoolSize(size int) Option {
	return func(o *options) {
		o.poolSize = size
	}
}

// WithExit replaces the function PolicyAbort uses to terminate the process
func WithExit(exit func(code int)) Option {
	return func(o *options) {
		if exit != nil {
			o.exit = exit
		}
	}
}
