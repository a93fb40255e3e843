package invoice

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
)

// ListCmd returns the invoice list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Long:  "List all invoices, newest first.",
		RunE:  runList,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	cliInstance, err := cli.FromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("error closing CLI", "error", err)
		}
	}()

	invoices, err := cliInstance.App.InvoiceService.ListInvoices(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INVOICE_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		for _, inv := range invoices {
			fmt.Printf("%d\n", inv.ID)
		}
		return nil
	}

	if jsonOutput {
		rows := make([]map[string]any, 0, len(invoices))
		for _, inv := range invoices {
			rows = append(rows, invoiceJSON(inv))
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"invoices": rows,
		})
	}

	if len(invoices) == 0 {
		fmt.Println("No invoices found")
		return nil
	}

	fmt.Printf("Found %d invoices:\n\n", len(invoices))
	for _, inv := range invoices {
		fmt.Printf("  [%d] %s  %s  issued %s\n",
			inv.ID, inv.InvoiceNumber,
			cli.FormatMoney(inv.Total, inv.Currency),
			cli.FormatDate(inv.IssuedAt))
	}
	return nil
}
