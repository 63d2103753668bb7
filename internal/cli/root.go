package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aryankumar/pdaxpy/internal/config"
	"github.com/spf13/cobra"
)

// flagBindings maps command-line flags to the config keys they override.
// Flags a command does not define are skipped.
var flagBindings = map[string]string{
	"backend":  "defaults.backend",
	"policy":   "defaults.policy",
	"parallel": "defaults.workers",
	"output":   "defaults.outputFormat",
	"no-color": "defaults.noColor",
	"size":     "defaults.size",
	"alpha":    "defaults.alpha",
	"y-offset": "defaults.yOffset",
	"repeat":   "defaults.repeat",
	"pin":      "defaults.pin",
}

// app holds state shared by every command of one invocation
type app struct {
	cfgFile string
	manager *config.Manager
	config  *config.Config
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pdaxpy",
		Short: "pdaxpy - fork-join parallel DAXPY benchmark",
		Long: `pdaxpy computes y = a*x + y over large vectors by splitting the index
space into one contiguous range per worker and joining them all before
returning. It compares worker lifecycle backends (managed goroutines,
OS-thread-locked workers and a reusable pool) and verifies every result
against the serial formula.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	// Define persistent flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.pdaxpy.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntP("parallel", "p", 0, "number of parallel workers (0 means one per CPU)")
	rootCmd.PersistentFlags().String("backend", "", "executor backend (managed, thread, pool)")
	rootCmd.PersistentFlags().String("policy", "", "failure policy (default, abort, propagate)")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newPlanCmd(a))
	rootCmd.AddCommand(newBenchCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// initConfig loads configuration, binds the command's flags and sets up logging
func (a *app) initConfig(cmd *cobra.Command) error {
	setupLogging(cmd)

	a.manager = config.NewManager(a.cfgFile)

	for name, key := range flagBindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := a.manager.BindFlag(key, flag); err != nil {
			return err
		}
	}

	cfg, err := a.manager.Load()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.config = cfg

	if path := a.manager.Path(); path != "" {
		slog.Debug("loaded configuration", "file", path)
	}

	return nil
}

// setupLogging configures structured logging with slog
func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	// Set log level based on verbose flag
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if noColor {
		// Use JSON handler for no-color mode
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if verbose {
		slog.Debug("verbose logging enabled")
	}
}

// defaults returns the resolved settings for the running command
func (a *app) defaults() (config.DefaultsConfig, error) {
	if a.config == nil {
		return config.DefaultsConfig{}, fmt.Errorf("configuration not loaded")
	}
	return a.config.Defaults, nil
}
