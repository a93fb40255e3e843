package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task_id>",
		Short: "Mark a task as completed",
		Long: `Move a task to the Completed status.

The move still honors the workflow rules: a task deep in the progress
chain completes directly, a task whose chain doesn't reach Completed
is rejected.

Examples:
  praxis task done 42
  praxis task done 42 --quiet
`,
		Args: cobra.ExactArgs(1),
		RunE: runDone,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runDone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	taskID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			err.Error(),
			"Usage: praxis task done <id>"); fmtErr != nil {
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

	completed, err := cliInstance.App.TaskService.Complete(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TASK_COMPLETE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", completed.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(taskJSON(completed))
	}

	fmt.Printf("Task %d completed\n", completed.ID)
	return nil
}
