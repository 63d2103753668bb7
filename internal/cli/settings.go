package cli

import (
	"io"
	"log/slog"

	"github.com/aryankumar/pdaxpy/internal/config"
	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/output"
	"github.com/spf13/cobra"
)

// newFormatter builds the formatter selected by the configuration
func newFormatter(cmd *cobra.Command, d config.DefaultsConfig) (output.Formatter, error) {
	format, err := output.ParseFormat(d.OutputFormat)
	if err != nil {
		return nil, err
	}

	wide, _ := cmd.Flags().GetBool("wide")

	return output.NewFormatter(format,
		output.WithNoColor(d.NoColor),
		output.WithWide(wide),
	), nil
}

// newExecutor builds an executor for backend from the configured defaults
func newExecutor(backend executor.Backend, d config.DefaultsConfig, observer executor.Observer) (executor.Executor, error) {
	policy, err := executor.ParsePolicy(d.Policy)
	if err != nil {
		return nil, err
	}

	opts := []executor.Option{
		executor.WithLogger(slog.Default()),
		executor.WithPolicy(policy),
		executor.WithPinning(d.Pin),
		executor.WithPoolSize(d.EffectiveWorkers()),
	}
	if observer != nil {
		opts = append(opts, executor.WithObserver(observer))
	}

	return executor.New(backend, opts...)
}

// writeNoData prints the message used when there is nothing to compute
func writeNoData(w io.Writer) {
	io.WriteString(w, "No data\n")
}
