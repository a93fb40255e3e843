// Package cmd wires the praxis command tree.
package cmd

import (
	"github.com/spf13/cobra"

	invoicecmd "github.com/digirix/praxis/internal/cli/invoice"
	statuscmd "github.com/digirix/praxis/internal/cli/status"
	taskcmd "github.com/digirix/praxis/internal/cli/task"
	timercmd "github.com/digirix/praxis/internal/cli/timer"
)

var rootCmd = &cobra.Command{
	Use:   "praxis",
	Short: "Praxis - practice management from the terminal",
	Long: `Praxis manages an accounting practice's tasks, compliance
schedules, time tracking and invoicing.`,
}

func init() {
	rootCmd.AddCommand(taskcmd.TaskCmd())
	rootCmd.AddCommand(statuscmd.StatusCmd())
	rootCmd.AddCommand(invoicecmd.InvoiceCmd())
	rootCmd.AddCommand(timercmd.TimerCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
