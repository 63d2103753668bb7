package main

import (
	"log/slog"
	"os"

	"github.com/aryankumar/pdaxpy/internal/cli"
	"github.com/aryankumar/pdaxpy/internal/util"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := util.SetupSignalHandler()

	// Execute the CLI
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		slog.Error("command failed", "error", util.FriendlyError(err))
		os.Exit(1)
	}
}
