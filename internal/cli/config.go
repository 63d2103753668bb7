package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aryankumar/pdaxpy/internal/config"
	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialise pdaxpy configuration",
		Long: `Inspect the effective configuration (file, PDAXPY_* environment variables
and flags combined) or write a configuration file with the defaults.`,
	}

	cmd.AddCommand(newConfigViewCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))

	return cmd
}

func newConfigViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.defaults()
			if err != nil {
				return err
			}

			formatter, err := newFormatter(cmd, d)
			if err != nil {
				return err
			}

			if d.OutputFormat == "table" {
				return formatter.Format(cmd.OutOrStdout(), defaultsMap(d))
			}
			return formatter.Format(cmd.OutOrStdout(), a.config)
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the current settings",
		Example: `  # Write ~/.pdaxpy/config.yaml
  pdaxpy config init

  # Write a project-local file using the pool backend
  pdaxpy config init --config ./pdaxpy.yaml --backend pool`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.defaults()
			if err != nil {
				return err
			}

			a.manager.SetDefaults(d)

			path, err := a.manager.SavePath()
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to check config file: %w", err)
				}
			}

			if err := a.manager.Save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", a.manager.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

// defaultsMap flattens the defaults into key/value rows
func defaultsMap(d config.DefaultsConfig) map[string]interface{} {
	return map[string]interface{}{
		"backend":      d.Backend,
		"policy":       d.Policy,
		"workers":      d.Workers,
		"size":         d.Size,
		"alpha":        d.Alpha,
		"yOffset":      d.YOffset,
		"repeat":       d.Repeat,
		"pin":          d.Pin,
		"outputFormat": d.OutputFormat,
		"noColor":      d.NoColor,
	}
}
