package timer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
)

// StartCmd returns the timer start subcommand
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <task_id>",
		Short: "Start a timer for a task",
		Long: `Start a stopwatch for a task.

Each task carries at most one running timer. Timers are held by the
calling process, so a timer started here must be stopped from the same
long-running session (the serve daemon exposes the same operation over
HTTP for that reason).

Examples:
  praxis timer start 42
`,
		Args: cobra.ExactArgs(1),
		RunE: runStart,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	taskID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			err.Error(),
			"Usage: praxis timer start <task_id>"); fmtErr != nil {
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

	startedAt, err := cliInstance.App.Tracker.StartTimer(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TIMER_START_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", taskID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(map[string]any{
			"task_id":    taskID,
			"started_at": startedAt.Format(time.RFC3339),
		})
	}

	fmt.Printf("Timer started for task %d at %s\n", taskID, startedAt.Format("3:04:05 PM"))
	return nil
}
