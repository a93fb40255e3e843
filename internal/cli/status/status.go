// Package status implements the workflow status subcommands of the praxis CLI.
package status

import (
	"github.com/spf13/cobra"
)

// StatusCmd returns the status parent command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage workflow statuses",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}
