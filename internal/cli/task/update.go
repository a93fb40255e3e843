package task

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
	taskservice "github.com/digirix/praxis/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task_id>",
		Short: "Update a task",
		Long: `Update task fields. Only the flags you pass are changed.

Changing the compliance frequency or start date re-derives the period
end date. Passing an empty string clears a field where that makes sense.

Examples:
  praxis task update 42 --title="Annual accounts FY25"
  praxis task update 42 --frequency=Quarterly --compliance-start=2025-01-01
  praxis task update 42 --due=""
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("type", "", "Priority label: Regular, Medium or Urgent")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().String("frequency", "", "Compliance frequency (empty clears the schedule)")
	cmd.Flags().String("years", "", "Compliance year count text")
	cmd.Flags().String("compliance-start", "", "Compliance period start date (empty clears)")
	cmd.Flags().Bool("recurring", false, "Mark the compliance obligation as recurring")
	cmd.Flags().Float64("rate", 0, "Service rate")
	cmd.Flags().String("currency", "", "Currency code")
	cmd.Flags().Float64("discount", 0, "Discount amount")
	cmd.Flags().Float64("tax", 0, "Tax percent (0-100)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	taskID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			err.Error(),
			"Usage: praxis task update <id> [flags]"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	req := taskservice.UpdateTaskRequest{TaskID: taskID}

	// Only flags the user actually set become part of the update.
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		req.Title = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		req.Description = &v
	}
	if cmd.Flags().Changed("type") {
		v, _ := cmd.Flags().GetString("type")
		req.TaskType = &v
	}
	if cmd.Flags().Changed("due") {
		v, _ := cmd.Flags().GetString("due")
		parsed, err := cli.ParseDateFlag(v)
		if err != nil {
			if fmtErr := formatter.Error("INVALID_DATE", err.Error()); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			return err
		}
		req.DueDate = datePtr(parsed)
	}
	if cmd.Flags().Changed("frequency") {
		v, _ := cmd.Flags().GetString("frequency")
		req.ComplianceFrequency = &v
	}
	if cmd.Flags().Changed("years") {
		v, _ := cmd.Flags().GetString("years")
		req.ComplianceYears = &v
	}
	if cmd.Flags().Changed("compliance-start") {
		v, _ := cmd.Flags().GetString("compliance-start")
		parsed, err := cli.ParseDateFlag(v)
		if err != nil {
			if fmtErr := formatter.Error("INVALID_DATE", err.Error()); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			return err
		}
		req.ComplianceStart = datePtr(parsed)
	}
	if cmd.Flags().Changed("recurring") {
		v, _ := cmd.Flags().GetBool("recurring")
		req.IsRecurring = &v
	}
	if cmd.Flags().Changed("rate") {
		v, _ := cmd.Flags().GetFloat64("rate")
		req.ServiceRate = &v
	}
	if cmd.Flags().Changed("currency") {
		v, _ := cmd.Flags().GetString("currency")
		req.Currency = &v
	}
	if cmd.Flags().Changed("discount") {
		v, _ := cmd.Flags().GetFloat64("discount")
		req.DiscountAmount = &v
	}
	if cmd.Flags().Changed("tax") {
		v, _ := cmd.Flags().GetFloat64("tax")
		req.TaxPercent = &v
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

	updated, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		if fmtErr := formatter.Error("TASK_UPDATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", updated.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(taskJSON(updated))
	}

	fmt.Printf("Updated task %d: %s\n", updated.ID, updated.Title)
	return nil
}

// datePtr wraps an optional date into the double-pointer form the update
// request uses to distinguish "clear" from "leave unchanged".
func datePtr(t *time.Time) **time.Time {
	return &t
}
