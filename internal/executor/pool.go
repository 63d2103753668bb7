package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aryankumar/pdaxpy/internal/partition"
	"github.com/aryankumar/pdaxpy/internal/util"
	"github.com/eapache/queue"
)

// job is one range submitted to the pool as part of a batch
type job struct {
	worker int
	rng    partition.Range
	work   workFunc
	batch  *batch
}

// batch is the per-Run barrier: it completes once every job of one call has run
type batch struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs util.MultiError
}

func (b *batch) done(err error) {
	if err != nil {
		b.mu.Lock()
		b.errs.Add(err)
		b.mu.Unlock()
	}
	b.wg.Done()
}

// Pool is a fixed set of long-lived worker goroutines fed from a FIFO queue.
// Workers are started by NewPool and stopped by Shutdown or Close; every
// launch waits only for its own jobs, so concurrent Runs do not block each other.
type Pool struct {
	// workers is the number of worker goroutines
	workers int

	// queue holds pending jobs; protected by mu
	queue *queue.Queue

	// mu protects queue; cond signals workers when jobs arrive or on shutdown
	mu   sync.Mutex
	cond *sync.Cond

	// logger for structured logging
	logger *slog.Logger

	// shutdown indicates the pool no longer accepts jobs
	shutdown atomic.Bool

	// stopped is closed once every worker goroutine has exited
	stopped chan struct{}

	submitted atomic.Int64
	completed atomic.Int64
}

// NewPool starts a pool with the given number of workers.
// workers <= 0 defaults to runtime.NumCPU().
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		workers: workers,
		queue:   queue.New(),
		logger:  logger,
		stopped: make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(i, &wg)
	}
	go func() {
		wg.Wait()
		close(p.stopped)
	}()

	p.logger.Debug("worker pool started", "workers", workers)

	return p
}

// submit enqueues a job. Returns util.ErrShutdown once the pool is shutting down.
func (p *Pool) submit(j job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdown.Load() {
		return util.ErrShutdown
	}

	p.queue.Add(j)
	p.submitted.Add(1)
	p.cond.Signal()
	return nil
}

func (p *Pool) launch(ranges []partition.Range, work workFunc) error {
	b := &batch{}
	b.wg.Add(len(ranges))

	for i, r := range ranges {
		err := p.submit(job{worker: i, rng: r, work: work, batch: b})
		if err != nil {
			// Release the barrier for this and every unsubmitted range.
			b.done(util.WrapWorkerError(i, r.From, r.To,
				fmt.Errorf("%w: %w", util.ErrWorkerSpawn, err)))
			for range ranges[i+1:] {
				b.wg.Done()
			}
			break
		}
	}

	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errs.ErrorOrNil()
}

// worker is the worker goroutine that processes jobs from the queue
func (p *Pool) worker(workerID int, wg *sync.WaitGroup) {
	defer wg.Done()

	p.logger.Debug("pool worker started", "worker_id", workerID)

	for {
		j, ok := p.next()
		if !ok {
			p.logger.Debug("pool worker finished (shut down)", "worker_id", workerID)
			return
		}

		err := p.execute(j)
		p.completed.Add(1)
		j.batch.done(err)
	}
}

// next blocks until a job is available. It returns false once the pool is
// shut down and the queue has drained.
func (p *Pool) next() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.queue.Length() == 0 {
		if p.shutdown.Load() {
			return job{}, false
		}
		p.cond.Wait()
	}

	return p.queue.Remove().(job), true
}

// execute runs a single job, converting a panic into an error
func (p *Pool) execute(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = util.WrapWorkerError(j.worker, j.rng.From, j.rng.To,
				fmt.Errorf("%w: panic: %v", util.ErrWorkerFailed, r))
		}
	}()

	return j.work(j.worker, j.rng)
}

// Shutdown stops accepting jobs, lets queued jobs finish and waits for the
// workers to exit. The context bounds how long to wait.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.shutdown.CompareAndSwap(false, true) {
		p.mu.Unlock()
		return fmt.Errorf("pool already shut down")
	}
	p.cond.Broadcast()
	p.mu.Unlock()

	p.logger.Debug("shutting down worker pool", "pending", p.Pending())

	select {
	case <-p.stopped:
		submitted, completed := p.Stats()
		p.logger.Debug("worker pool shut down",
			"workers", p.WorkerCount(),
			"submitted", submitted,
			"completed", completed)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}

// Close shuts the pool down, waiting up to a second for workers to exit.
// Closing an already closed pool is a no-op.
func (p *Pool) Close() error {
	if p.IsShutdown() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return p.Shutdown(ctx)
}

// IsShutdown returns true if the pool has been shut down
func (p *Pool) IsShutdown() bool {
	return p.shutdown.Load()
}

// Pending returns the number of jobs waiting in the queue
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Length()
}

// WorkerCount returns the number of workers in the pool
func (p *Pool) WorkerCount() int {
	return p.workers
}

// Stats returns submission counters
func (p *Pool) Stats() (submitted, completed int64) {
	return p.submitted.Load(), p.completed.Load()
}
