package cli

import (
	"fmt"

	"github.com/aryankumar/pdaxpy/internal/output"
	"github.com/aryankumar/pdaxpy/pkg/version"
	"github.com/spf13/cobra"
)

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display detailed version information for the pdaxpy CLI",
		// Version output needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}

	return cmd
}

func runVersion(cmd *cobra.Command) error {
	info := version.Get()
	out := cmd.OutOrStdout()
	outputFormat, _ := cmd.Flags().GetString("output")

	switch outputFormat {
	case "json", "yaml":
		format, _ := output.ParseFormat(outputFormat)
		return output.NewFormatter(format).Format(out, info)
	case "table":
		return output.NewFormatter(output.FormatTable, output.WithNoColor(true)).Format(out, map[string]interface{}{
			"Version":    info.Version,
			"Commit":     info.Commit,
			"Build Time": info.BuildTime,
			"Go Version": info.GoVersion,
			"Platform":   info.Platform,
			"CPUs":       info.CPUs,
		})
	default:
		// Default to human-readable format
		fmt.Fprintln(out, info.String())
		return nil
	}
}
