package cli

import (
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"github.com/aryankumar/pdaxpy/internal/bench"
	"github.com/aryankumar/pdaxpy/internal/config"
	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/util"
	"github.com/spf13/cobra"
)

// newBenchCmd creates the bench command
func newBenchCmd(a *app) *cobra.Command {
	var (
		backendNames []string
		workerCounts []int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare backends across worker counts",
		Long: `Measure every combination of --backends and --workers, --repeat times
each, and print a comparison. Every run is verified; the command fails if any
measurement did not verify.`,
		Example: `  # All backends with 1, 2, 4 and one-per-CPU workers
  pdaxpy bench

  # Managed vs pool, larger vectors, 10 runs each
  pdaxpy bench --backends managed,pool -n 1000000 --repeat 10

  # Machine-readable
  pdaxpy bench -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, a, backendNames, workerCounts)
		},
	}

	addWorkloadFlags(cmd)
	cmd.Flags().Bool("pin", false, "pin thread backend workers to CPUs")
	cmd.Flags().StringSliceVar(&backendNames, "backends", nil, "backends to compare (default all)")
	cmd.Flags().IntSliceVar(&workerCounts, "workers", nil, "worker counts to sweep (default 1,2,4,NumCPU)")
	cmd.Flags().Bool("wide", false, "wide output with additional columns")

	return cmd
}

func runBench(cmd *cobra.Command, a *app, backendNames []string, workerCounts []int) error {
	logger := slog.Default()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	d, err := a.defaults()
	if err != nil {
		return err
	}

	if d.Size == 0 {
		writeNoData(out)
		return nil
	}

	backends, err := parseBackends(backendNames)
	if err != nil {
		return err
	}

	if len(workerCounts) == 0 {
		workerCounts = defaultWorkerCounts(runtime.NumCPU())
	}
	for _, w := range workerCounts {
		if w < 1 {
			return util.NewValidationError("workers", w, "worker counts must be positive")
		}
	}

	formatter, err := newFormatter(cmd, d)
	if err != nil {
		return err
	}

	measurements := make([]bench.Measurement, 0, len(backends)*len(workerCounts))

	for _, backend := range backends {
		for _, workers := range workerCounts {
			if err := ctx.Err(); err != nil {
				logger.Warn("benchmark interrupted", "completed", len(measurements))
				return err
			}

			m, err := measureOne(cmd, backend, workers, d)
			if err != nil {
				return err
			}
			measurements = append(measurements, m)

			logger.Debug("measurement finished",
				"backend", m.Backend,
				"workers", workers,
				"avg", m.Average(),
				"verified", m.Verified)
		}
	}

	if err := formatter.FormatMeasurements(out, measurements); err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	var errs util.MultiError
	for _, m := range measurements {
		if m.Err != nil {
			errs.Add(fmt.Errorf("%s/%d: %w", m.Backend, m.Workers, m.Err))
		}
	}
	return errs.ErrorOrNil()
}

// measureOne runs one backend at one worker count, releasing the executor afterwards
func measureOne(cmd *cobra.Command, backend executor.Backend, workers int, d config.DefaultsConfig) (bench.Measurement, error) {
	d.Workers = workers

	exec, err := newExecutor(backend, d, nil)
	if err != nil {
		return bench.Measurement{}, err
	}
	defer exec.Close()

	return bench.Measure(cmd.Context(), exec, bench.Params{
		Size:    d.Size,
		Workers: workers,
		Alpha:   d.Alpha,
		YOffset: d.YOffset,
		Repeat:  d.Repeat,
	}), nil
}

// parseBackends resolves backend names, defaulting to every backend
func parseBackends(names []string) ([]executor.Backend, error) {
	if len(names) == 0 {
		return executor.Backends(), nil
	}

	backends := make([]executor.Backend, 0, len(names))
	seen := make(map[executor.Backend]bool)
	for _, name := range names {
		b, err := executor.ParseBackend(name)
		if err != nil {
			return nil, err
		}
		if !seen[b] {
			seen[b] = true
			backends = append(backends, b)
		}
	}
	return backends, nil
}

// defaultWorkerCounts returns 1, 2, 4 and cpus, sorted and without duplicates
func defaultWorkerCounts(cpus int) []int {
	set := map[int]bool{1: true, 2: true, 4: true}
	if cpus > 0 {
		set[cpus] = true
	}

	counts := make([]int, 0, len(set))
	for c := range set {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	return counts
}
