package timer

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
)

// StopCmd returns the timer stop subcommand
func StopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop <task_id>",
		Short: "Stop a task's timer",
		Long: `Stop a running stopwatch and record the elapsed time against
the task.

Examples:
  praxis timer stop 42
`,
		Args: cobra.ExactArgs(1),
		RunE: runStop,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (seconds only)")

	return cmd
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	taskID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			err.Error(),
			"Usage: praxis timer stop <task_id>"); fmtErr != nil {
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

	entry, err := cliInstance.App.Tracker.StopTimer(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TIMER_STOP_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", entry.Seconds)
		return nil
	}
	if jsonOutput {
		return formatter.Success(map[string]any{
			"task_id": entry.TaskID,
			"seconds": entry.Seconds,
		})
	}

	fmt.Printf("Timer stopped for task %d: %ds recorded\n", entry.TaskID, entry.Seconds)
	return nil
}
