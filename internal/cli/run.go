package cli

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aryankumar/pdaxpy/internal/bench"
	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/spf13/cobra"
)

// newRunCmd creates the run command
func newRunCmd(a *app) *cobra.Command {
	var (
		debug     bool
		showRange bool
		dumpLimit int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one timed, verified DAXPY measurement",
		Long: `Run y = a*x + y once (or --repeat times) with the configured backend and
worker count. Inputs are x[i] = i and y[i] = i + y-offset; every run is
verified element by element before it is reported.`,
		Example: `  # Default size and backend, one worker per CPU
  pdaxpy run

  # Thread backend pinned to CPUs, 8 workers, 5 runs
  pdaxpy run --backend thread --pin -p 8 --repeat 5

  # Show the ranges each worker updated
  pdaxpy run -n 10 -p 3 --ranges

  # Dump vectors before and after the update
  pdaxpy run -n 10 --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, a, debug, showRange, dumpLimit)
		},
	}

	addWorkloadFlags(cmd)
	cmd.Flags().Bool("pin", false, "pin thread backend workers to CPUs")
	cmd.Flags().BoolVar(&debug, "debug", false, "print vectors and every completed range")
	cmd.Flags().BoolVar(&showRange, "ranges", false, "show per-range results of the last run")
	cmd.Flags().IntVar(&dumpLimit, "dump-limit", 10, "elements printed per vector with --debug (0 for all)")
	cmd.Flags().Bool("wide", false, "wide output with additional columns")

	return cmd
}

// addWorkloadFlags defines the flags describing the vectors and scalar
func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("size", "n", 0, "vector length (default from config, 38525)")
	cmd.Flags().Float64("alpha", 0, "scalar multiplier (default from config, 1.37)")
	cmd.Flags().Float64("y-offset", 0, "initial y offset, y[i] = i + offset (default from config, 3.25)")
	cmd.Flags().Int("repeat", 0, "timed runs per measurement (default from config, 1)")
}

func runRun(cmd *cobra.Command, a *app, debug, showRanges bool, dumpLimit int) error {
	logger := slog.Default()
	out := cmd.OutOrStdout()

	d, err := a.defaults()
	if err != nil {
		return err
	}

	if d.Size == 0 {
		writeNoData(out)
		return nil
	}

	backend, err := executor.ParseBackend(d.Backend)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd, d)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		results []executor.Result
	)
	collect := func(r executor.Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	observer := collect
	if debug {
		printRange := bench.DebugObserver(cmd.ErrOrStderr())
		observer = func(r executor.Result) {
			printRange(r)
			collect(r)
		}
	}

	exec, err := newExecutor(backend, d, observer)
	if err != nil {
		return err
	}
	defer exec.Close()

	params := bench.Params{
		Size:    d.Size,
		Workers: d.EffectiveWorkers(),
		Alpha:   d.Alpha,
		YOffset: d.YOffset,
		Repeat:  d.Repeat,
	}
	// --ranges reports the last run only
	params.BeforeRun = func(int) {
		mu.Lock()
		results = results[:0]
		mu.Unlock()
	}
	if debug {
		params.Trace = cmd.ErrOrStderr()
		params.TraceLimit = dumpLimit
	}

	logger.Debug("starting measurement",
		"backend", backend.String(),
		"policy", exec.Policy().String(),
		"size", params.Size,
		"workers", params.Workers,
		"repeat", params.Repeat)

	m := bench.Measure(cmd.Context(), exec, params)

	if err := formatter.FormatMeasurements(out, []bench.Measurement{m}); err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if showRanges {
		fmt.Fprintln(out, "")
		if err := formatter.FormatResults(out, results); err != nil {
			return fmt.Errorf("failed to format ranges: %w", err)
		}
	}

	return m.Err
}
