package invoice

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
	"github.com/digirix/praxis/internal/cli/styles"
)

// ShowCmd returns the invoice show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <invoice_id>",
		Short: "Show invoice details",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	invoiceID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_INVOICE_ID",
			err.Error(),
			"Usage: praxis invoice show <id>"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

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

	inv, err := cliInstance.App.InvoiceService.GetInvoice(ctx, invoiceID)
	if err != nil {
		if fmtErr := formatter.Error("INVOICE_NOT_FOUND",
			fmt.Sprintf("invoice %d not found", invoiceID)); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", inv.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(invoiceJSON(inv))
	}

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render("Invoice " + inv.InvoiceNumber))
	content.WriteString("\n\n")

	if inv.TaskID != nil {
		content.WriteString(fmt.Sprintf("%s %d\n",
			styles.LabelStyle.Render("Task:"), *inv.TaskID))
	}
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Issued:"),
		styles.ValueStyle.Render(cli.FormatDate(inv.IssuedAt))))

	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Rate:"),
		styles.ValueStyle.Render(cli.FormatMoney(inv.ServiceRate, inv.Currency))))
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Discount:"),
		styles.ValueStyle.Render(cli.FormatMoney(inv.DiscountAmount, inv.Currency))))
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Subtotal:"),
		styles.ValueStyle.Render(cli.FormatMoney(inv.Subtotal, inv.Currency))))
	content.WriteString(fmt.Sprintf("%s %s (%.0f%%)\n",
		styles.LabelStyle.Render("Tax:"),
		styles.ValueStyle.Render(cli.FormatMoney(inv.TaxAmount, inv.Currency)),
		inv.TaxPercent))
	content.WriteString(fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render("Total:"),
		styles.CompletedStyle.Render(cli.FormatMoney(inv.Total, inv.Currency))))

	fmt.Println(styles.RenderCard(content.String()))
	return nil
}
