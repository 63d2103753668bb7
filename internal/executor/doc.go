// Package executor provides the fork-join engine that runs the DAXPY kernel,
// y = a*x + y, over a large index range using several workers.
//
// Every backend shares one orchestration: the work [0, n) is split by
// partition.Compute into equal contiguous ranges, one concurrent worker is
// started per range, the caller blocks until all of them have finished, and
// the leftover range (n % workers) is then applied on the calling goroutine.
// Backends only differ in how workers are created and joined.
//
// # Backends
//
//   - BackendManaged: one goroutine per range under a conc.WaitGroup, joined
//     automatically; panics are recovered and returned as errors
//   - BackendThread: one dedicated OS thread per range (runtime.LockOSThread),
//     optionally pinned to a CPU, joined through explicit handles; the thread
//     is destroyed when its worker returns
//   - BackendPool: a reusable worker pool fed from a FIFO queue; each call
//     waits on its own barrier
//
// # Basic Usage
//
//	exec, err := executor.New(executor.BackendManaged, executor.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer exec.Close()
//
//	if err := exec.Run(len(x), 1.37, x, y, runtime.NumCPU()); err != nil {
//	    return err
//	}
//
// # Failure Policy
//
// A worker that cannot finish its range leaves y partially updated. The
// FailurePolicy decides what happens next:
//
//   - PolicyAbort logs the failure and terminates the process
//   - PolicyPropagate joins every started worker and returns the error
//
// PolicyDefault picks the backend's default: abort for BackendThread,
// propagate for the others. A nil error from Run always means every index
// of y[0:n) was updated.
//
// # Observing Progress
//
// WithObserver registers a callback receiving one Result per range, which the
// CLI uses for debug output and per-range timing:
//
//	exec, _ := executor.New(executor.BackendThread,
//	    executor.WithObserver(func(r executor.Result) {
//	        log.Printf("worker %d %s took %s", r.Worker, r.Range, r.Duration)
//	    }))
//
// # Concurrency Guarantees
//
//   - Ranges are disjoint, so workers write y without locks
//   - x and a are shared read-only
//   - The join provides the happens-before edge for every write to y
//   - No worker is detached: Run waits for the slowest one
//   - There is no cancellation; once started every range runs to completion
//
// Managed and thread executors are stateless and may be used concurrently.
// The pool executor is safe for concurrent Run calls and must be closed.
package executor
