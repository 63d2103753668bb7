package util

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// forcedExitCode is the status used when a second signal interrupts shutdown
const forcedExitCode = 130

// SetupSignalHandler creates a context that is cancelled on receiving SIGINT or SIGTERM.
// The returned stop function releases the handler; a second signal before
// that forces immediate exit, since a running DAXPY update cannot be interrupted.
func SetupSignalHandler() (context.Context, context.CancelFunc) {
	return setupSignalHandler(os.Exit)
}

func setupSignalHandler(exit func(int)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			cancel()
			close(done)
		})
	}

	go func() {
		select {
		case sig := <-sigCh:
			slog.Info("received shutdown signal, finishing current run", "signal", sig.String())
			cancel()
		case <-done:
			return
		}

		select {
		case sig := <-sigCh:
			slog.Warn("received second shutdown signal, forcing exit", "signal", sig.String())
			exit(forcedExitCode)
		case <-done:
		}
	}()

	return ctx, stop
}
