// Package invoice implements the invoice subcommands of the praxis CLI.
package invoice

import (
	"github.com/spf13/cobra"
)

// InvoiceCmd returns the invoice parent command
func InvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage invoices",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}
