package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
	taskservice "github.com/digirix/praxis/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task with specified attributes.

New tasks always start in the New status. For revenue tasks a compliance
frequency plus a start date derives the period end date automatically.

Examples:
  # Simple admin task
  praxis task create --title="File the quarterly VAT return" --admin

  # Revenue task with compliance schedule
  praxis task create \
    --title="Annual accounts FY24" \
    --frequency=Annual \
    --compliance-start=2024-04-01 \
    --rate=1500 --tax=20

  # Quiet mode for bash capture
  TASK_ID=$(praxis task create --title="Fix ledger import" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}

	cmd.Flags().String("description", "", "Task description (markdown)")
	cmd.Flags().Bool("admin", false, "Create an admin task instead of a revenue task")
	cmd.Flags().String("type", "", "Priority label: Regular, Medium or Urgent")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("frequency", "", "Compliance frequency (e.g. Monthly, Quarterly, Annual)")
	cmd.Flags().String("years", "", "Compliance year count text")
	cmd.Flags().String("compliance-start", "", "Compliance period start date (YYYY-MM-DD)")
	cmd.Flags().Bool("recurring", false, "Mark the compliance obligation as recurring")
	cmd.Flags().Float64("rate", 0, "Service rate")
	cmd.Flags().String("currency", "", "Currency code (defaults to USD)")
	cmd.Flags().Float64("discount", 0, "Discount amount")
	cmd.Flags().Float64("tax", 0, "Tax percent (0-100)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	isAdmin, _ := cmd.Flags().GetBool("admin")
	taskType, _ := cmd.Flags().GetString("type")
	dueFlag, _ := cmd.Flags().GetString("due")
	frequency, _ := cmd.Flags().GetString("frequency")
	years, _ := cmd.Flags().GetString("years")
	startFlag, _ := cmd.Flags().GetString("compliance-start")
	recurring, _ := cmd.Flags().GetBool("recurring")
	rate, _ := cmd.Flags().GetFloat64("rate")
	currency, _ := cmd.Flags().GetString("currency")
	discount, _ := cmd.Flags().GetFloat64("discount")
	tax, _ := cmd.Flags().GetFloat64("tax")

	dueDate, err := cli.ParseDateFlag(dueFlag)
	if err != nil {
		if fmtErr := formatter.Error("INVALID_DATE", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}
	complianceStart, err := cli.ParseDateFlag(startFlag)
	if err != nil {
		if fmtErr := formatter.Error("INVALID_DATE", err.Error()); fmtErr != nil {
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

	created, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:               title,
		Description:         description,
		IsAdmin:             isAdmin,
		TaskType:            taskType,
		DueDate:             dueDate,
		ComplianceFrequency: frequency,
		ComplianceYears:     years,
		ComplianceStart:     complianceStart,
		IsRecurring:         recurring,
		ServiceRate:         rate,
		Currency:            currency,
		DiscountAmount:      discount,
		TaxPercent:          tax,
	})
	if err != nil {
		if fmtErr := formatter.Error("TASK_CREATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", created.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(taskJSON(created))
	}

	fmt.Printf("Created task %d: %s\n", created.ID, created.Title)
	if created.ComplianceEnd != nil {
		fmt.Printf("Compliance period ends %s\n", cli.FormatDate(created.ComplianceEnd))
	}
	return nil
}
