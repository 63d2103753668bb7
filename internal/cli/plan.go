package cli

import (
	"github.com/aryankumar/pdaxpy/internal/partition"
	"github.com/spf13/cobra"
)

// newPlanCmd creates the plan command
func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how the index space is split across workers",
		Long: `Print the ranges a run of the given size would hand to each worker, plus
the leftover range that runs on the calling goroutine after the join.
Nothing is computed.`,
		Example: `  # 10 elements over 3 workers: three ranges of 3 and a leftover [9,10)
  pdaxpy plan -n 10 -p 3

  # As JSON
  pdaxpy plan -n 38525 -p 8 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, a)
		},
	}

	cmd.Flags().IntP("size", "n", 0, "vector length (default from config, 38525)")

	return cmd
}

func runPlan(cmd *cobra.Command, a *app) error {
	d, err := a.defaults()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd, d)
	if err != nil {
		return err
	}

	plan := partition.Compute(d.Size, d.EffectiveWorkers())
	return formatter.FormatPlan(cmd.OutOrStdout(), plan)
}
