package main

import (
	"log/slog"
	"os"

	"github.com/digirix/praxis/cmd"
	"github.com/digirix/praxis/internal/cli"
	"github.com/digirix/praxis/internal/logging"
)

func main() {
	if err := logging.Init(); err != nil {
		// Logging to a file is best effort; the CLI still works without it.
		slog.Warn("failed to initialize file logging", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(cli.ExitCodeFor(err))
	}
}
