// Package timer implements the timer subcommands of the praxis CLI.
package timer

import (
	"github.com/spf13/cobra"
)

// TimerCmd returns the timer parent command
func TimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Track time against tasks",
	}

	cmd.AddCommand(StartCmd())
	cmd.AddCommand(StopCmd())

	return cmd
}
