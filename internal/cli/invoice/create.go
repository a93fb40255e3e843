package invoice

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
	invoiceservice "github.com/digirix/praxis/internal/services/invoice"
)

// CreateCmd returns the invoice create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Raise an invoice",
		Long: `Raise an invoice, optionally against a task.

When --task is given the invoice inherits the task's rate, currency,
discount and tax unless overridden, and the task is linked to the new
invoice. Totals are always computed: tax applies to the discounted
subtotal.

Examples:
  # Invoice task 42 on its own billing terms
  praxis invoice create --task=42

  # Standalone invoice
  praxis invoice create --rate=1000 --discount=100 --tax=10
`,
		RunE: runCreate,
	}

	cmd.Flags().Int("task", 0, "Task to invoice")
	cmd.Flags().String("number", "", "Invoice number (generated when empty)")
	cmd.Flags().Float64("rate", 0, "Service rate")
	cmd.Flags().String("currency", "", "Currency code")
	cmd.Flags().Float64("discount", 0, "Discount amount")
	cmd.Flags().Float64("tax", 0, "Tax percent (0-100)")
	cmd.Flags().String("issued", "", "Issue date (YYYY-MM-DD, defaults to today)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	taskID, _ := cmd.Flags().GetInt("task")
	number, _ := cmd.Flags().GetString("number")
	rate, _ := cmd.Flags().GetFloat64("rate")
	currency, _ := cmd.Flags().GetString("currency")
	discount, _ := cmd.Flags().GetFloat64("discount")
	tax, _ := cmd.Flags().GetFloat64("tax")
	issuedFlag, _ := cmd.Flags().GetString("issued")

	issuedAt, err := cli.ParseDateFlag(issuedFlag)
	if err != nil {
		if fmtErr := formatter.Error("INVALID_DATE", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	req := invoiceservice.CreateInvoiceRequest{
		InvoiceNumber:  number,
		ServiceRate:    rate,
		Currency:       currency,
		DiscountAmount: discount,
		TaxPercent:     tax,
		IssuedAt:       issuedAt,
	}
	if taskID > 0 {
		req.TaskID = &taskID
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

	// Billing flags the user didn't pass fall back to the task's terms.
	if taskID > 0 {
		t, err := cliInstance.App.TaskService.GetTask(ctx, taskID)
		if err != nil {
			if fmtErr := formatter.Error("TASK_NOT_FOUND",
				fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			return err
		}
		if !cmd.Flags().Changed("rate") {
			req.ServiceRate = t.ServiceRate
		}
		if !cmd.Flags().Changed("discount") {
			req.DiscountAmount = t.DiscountAmount
		}
		if !cmd.Flags().Changed("tax") {
			req.TaxPercent = t.TaxPercent
		}
	}

	created, err := cliInstance.App.InvoiceService.CreateInvoice(ctx, req)
	if err != nil {
		if fmtErr := formatter.Error("INVOICE_CREATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", created.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(invoiceJSON(created))
	}

	fmt.Printf("Created invoice %s: %s\n", created.InvoiceNumber,
		cli.FormatMoney(created.Total, created.Currency))
	return nil
}
