package executor

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aryankumar/pdaxpy/internal/kernel"
	"github.com/aryankumar/pdaxpy/internal/partition"
	"github.com/aryankumar/pdaxpy/internal/util"
)

// Executor runs the DAXPY kernel over [0, n) in parallel.
// Run returns only after every index of y[0:n) has been updated, or with an
// error if a worker could not complete its range.
type Executor interface {
	io.Closer

	// Run sets y[i] = a*x[i] + y[i] for every i in [0, n) using up to
	// workers concurrent workers
	Run(n int, a float64, x, y []float64, workers int) error

	// Backend returns the thread-lifecycle strategy in use
	Backend() Backend

	// Policy returns the effective failure policy
	Policy() FailurePolicy
}

// Backend selects how workers are created and joined
type Backend int

const (
	// BackendManaged spawns one goroutine per range under a conc.WaitGroup
	BackendManaged Backend = iota

	// BackendThread locks each worker to its own OS thread and joins explicit handles
	BackendThread

	// BackendPool submits ranges to a reusable worker pool
	BackendPool
)

// Backends returns every supported backend
func Backends() []Backend {
	return []Backend{BackendManaged, BackendThread, BackendPool}
}

// String returns the backend name
func (b Backend) String() string {
	switch b {
	case BackendManaged:
		return "managed"
	case BackendThread:
		return "thread"
	case BackendPool:
		return "pool"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend parses a backend name (case-insensitive)
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "managed":
		return BackendManaged, nil
	case "thread":
		return BackendThread, nil
	case "pool":
		return BackendPool, nil
	default:
		return 0, fmt.Errorf("%w %q", util.ErrUnknownBackend, s)
	}
}

// FailurePolicy decides what happens when a worker cannot complete
type FailurePolicy int

const (
	// PolicyDefault uses the backend's own default
	PolicyDefault FailurePolicy = iota

	// PolicyAbort logs the failure and terminates the process
	PolicyAbort

	// PolicyPropagate joins the remaining workers and returns the error
	PolicyPropagate
)

// String returns the policy name
func (p FailurePolicy) String() string {
	switch p {
	case PolicyDefault:
		return "default"
	case PolicyAbort:
		return "abort"
	case PolicyPropagate:
		return "propagate"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses a failure policy name (case-insensitive)
func ParsePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return PolicyDefault, nil
	case "abort":
		return PolicyAbort, nil
	case "propagate":
		return PolicyPropagate, nil
	default:
		return 0, fmt.Errorf("%w %q", util.ErrUnknownPolicy, s)
	}
}

// DefaultPolicy returns the failure policy a backend uses when none is set.
// The thread backend aborts: a dropped OS thread leaves part of y undefined.
func (b Backend) DefaultPolicy() FailurePolicy {
	if b == BackendThread {
		return PolicyAbort
	}
	return PolicyPropagate
}

// abortExitCode is the process exit status used by PolicyAbort
const abortExitCode = 2

// launcher starts one worker per range, runs work on each and returns once
// all started workers have finished
type launcher interface {
	launch(ranges []partition.Range, work workFunc) error
}

// workFunc processes one range on behalf of the given worker index.
// A non-nil error means the range was not fully updated.
type workFunc func(worker int, r partition.Range) error

// engine is the backend-independent orchestration shared by every Executor
type engine struct {
	backend  Backend
	launcher launcher
	policy   FailurePolicy
	logger   *slog.Logger
	observer Observer
	exit     func(code int)
}

// New creates an Executor for the given backend
func New(backend Backend, opts ...Option) (Executor, error) {
	o := &options{
		logger: slog.Default(),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	e := &engine{
		backend:  backend,
		policy:   o.policy,
		logger:   o.logger,
		observer: o.observer,
		exit:     o.exit,
	}
	if e.policy == PolicyDefault {
		e.policy = backend.DefaultPolicy()
	}

	switch backend {
	case BackendManaged:
		e.launcher = managedLauncher{}
	case BackendThread:
		e.launcher = newThreadLauncher(o.pin, o.logger)
	case BackendPool:
		e.launcher = NewPool(o.poolSize, o.logger)
	default:
		return nil, fmt.Errorf("%w: %d", util.ErrUnknownBackend, int(backend))
	}

	return e, nil
}

// RunParallel updates y in place with the managed backend and the default
// logger. It is the package-level entry point for one-off calls.
func RunParallel(n int, a float64, x, y []float64, workers int) error {
	e := &engine{
		backend:  BackendManaged,
		launcher: managedLauncher{},
		policy:   PolicyPropagate,
		logger:   slog.Default(),
		exit:     os.Exit,
	}
	return e.Run(n, a, x, y, workers)
}

// Backend returns the configured backend
func (e *engine) Backend() Backend {
	return e.backend
}

// Policy returns the effective failure policy
func (e *engine) Policy() FailurePolicy {
	return e.policy
}

// Close releases backend resources (the pool's workers); it is a no-op for
// backends that create workers per call
func (e *engine) Close() error {
	if c, ok := e.launcher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Run implements Executor
func (e *engine) Run(n int, a float64, x, y []float64, workers int) error {
	if n <= 0 {
		return nil
	}

	plan := partition.Compute(n, workers)

	e.logger.Debug("daxpy plan",
		"backend", e.backend.String(),
		"n", plan.N,
		"requested_workers", workers,
		"workers", plan.Workers,
		"work_size", plan.WorkSize(),
		"leftover", plan.Leftover.Len())

	if plan.Serial() {
		e.inline(plan.Ranges[0], false, a, x, y)
		return nil
	}

	work := func(worker int, r partition.Range) (err error) {
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				err = util.WrapWorkerError(worker, r.From, r.To,
					fmt.Errorf("%w: panic: %v", util.ErrWorkerFailed, p))
			}
			e.notify(Result{
				Worker:   worker,
				Range:    r,
				Duration: time.Since(start),
				Err:      err,
			})
		}()

		kernel.Apply(r.From, r.To, a, x, y)
		return nil
	}

	if err := e.launcher.launch(plan.Ranges, work); err != nil {
		return e.fail(plan, err)
	}

	if plan.HasLeftover() {
		e.inline(plan.Leftover, true, a, x, y)
	}

	return nil
}

// inline applies a range on the calling goroutine
func (e *engine) inline(r partition.Range, leftover bool, a float64, x, y []float64) {
	start := time.Now()
	kernel.Apply(r.From, r.To, a, x, y)
	e.notify(Result{
		Worker:   InlineWorker,
		Range:    r,
		Inline:   true,
		Leftover: leftover,
		Duration: time.Since(start),
	})
}

// fail applies the failure policy once every started worker has been joined
func (e *engine) fail(plan partition.Plan, err error) error {
	err = fmt.Errorf("daxpy over %d elements with %d workers: %w", plan.N, plan.Workers, err)

	if e.policy == PolicyAbort {
		e.logger.Error("parallel update incomplete, aborting",
			"backend", e.backend.String(),
			"error", err)
		e.exit(abortExitCode)
		// Only reached when exit has been replaced.
		return err
	}

	e.logger.Warn("parallel update incomplete",
		"backend", e.backend.String(),
		"error", err)
	return err
}

func (e *engine) notify(r Result) {
	if e.observer != nil {
		e.observer(r)
	}
}
