package executor

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/aryankumar/pdaxpy/internal/partition"
	"github.com/aryankumar/pdaxpy/internal/util"
)

// maxCPUs bounds CPU indices to the size of the kernel affinity mask
const maxCPUs = 1024

// threadLauncher gives every range a dedicated OS thread. Each worker is a
// goroutine that calls runtime.LockOSThread and never unlocks, so the runtime
// destroys the thread (and any affinity mask set on it) when the worker
// returns. The orchestrator joins every spawned handle explicitly.
type threadLauncher struct {
	pin    bool
	cpus   []int
	logger *slog.Logger
}

func newThreadLauncher(pin bool, logger *slog.Logger) *threadLauncher {
	l := &threadLauncher{
		pin:    pin,
		logger: logger,
	}
	if pin {
		l.cpus = allowedCPUs()
	}
	return l
}

// threadHandle is the join handle of one spawned worker thread
type threadHandle struct {
	worker int
	rng    partition.Range
	cpu    int
	tid    int
	done   chan struct{}
	err    error
}

func (l *threadLauncher) launch(ranges []partition.Range, work workFunc) error {
	handles := make([]*threadHandle, 0, len(ranges))
	var errs util.MultiError

	for i, r := range ranges {
		h, err := l.spawn(i, r, work)
		if err != nil {
			// Stop spawning; the ones already running are still joined below.
			errs.Add(err)
			break
		}
		handles = append(handles, h)
	}

	for _, h := range handles {
		errs.Add(h.join())
	}

	return errs.ErrorOrNil()
}

// spawn starts a worker thread and waits until it is locked (and pinned,
// if requested) before returning its handle
func (l *threadLauncher) spawn(worker int, r partition.Range, work workFunc) (*threadHandle, error) {
	h := &threadHandle{
		worker: worker,
		rng:    r,
		cpu:    -1,
		done:   make(chan struct{}),
	}
	if l.pin {
		h.cpu = l.cpuFor(worker)
	}

	ready := make(chan error, 1)

	go func() {
		defer close(h.done)
		defer func() {
			if p := recover(); p != nil {
				h.err = fmt.Errorf("%w: panic: %v", util.ErrWorkerFailed, p)
			}
		}()

		// No matching UnlockOSThread: the thread exits with this goroutine.
		runtime.LockOSThread()
		h.tid = currentThreadID()

		if h.cpu >= 0 {
			if err := pinThread(h.cpu); err != nil {
				ready <- err
				return
			}
		}
		ready <- nil

		h.err = work(worker, r)
	}()

	if err := <-ready; err != nil {
		<-h.done
		return nil, util.WrapWorkerError(worker, r.From, r.To,
			fmt.Errorf("%w: pin to cpu %d: %w", util.ErrWorkerSpawn, h.cpu, err))
	}

	l.logger.Debug("worker thread started",
		"worker", worker,
		"range", r.String(),
		"tid", h.tid,
		"cpu", h.cpu)

	return h, nil
}

// join blocks until the worker thread has finished
func (h *threadHandle) join() error {
	<-h.done
	if h.err == nil {
		return nil
	}

	var werr *util.WorkerError
	if errors.As(h.err, &werr) {
		return h.err
	}
	return util.WrapWorkerError(h.worker, h.rng.From, h.rng.To, h.err)
}

// cpuFor maps a worker index onto the allowed CPU set round-robin
func (l *threadLauncher) cpuFor(worker int) int {
	if len(l.cpus) == 0 {
		return worker % runtime.NumCPU()
	}
	return l.cpus[worker%len(l.cpus)]
}
