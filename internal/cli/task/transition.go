package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
	"github.com/digirix/praxis/internal/cli/styles"
)

// TransitionCmd returns the task transition subcommand
func TransitionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transition <task_id> [status_id]",
		Short: "Move a task to another status",
		Long: `Move a task to another workflow status.

With only a task ID the command lists the statuses the task can move to.
With a status ID it performs the move. Only single-step moves along the
progress chain are allowed, plus the jump to Completed where the chain
permits it.

Examples:
  # See where task 42 can go
  praxis task transition 42

  # Move task 42 to status 3
  praxis task transition 42 3
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runTransition,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runTransition(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	taskID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			err.Error(),
			"Usage: praxis task transition <task_id> [status_id]"); fmtErr != nil {
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

	// No target: list the reachable statuses instead of moving.
	if len(args) == 1 {
		return listTransitions(cmd, formatter, cliInstance, taskID)
	}

	statusID, err := strconv.Atoi(args[1])
	if err != nil || statusID <= 0 {
		parseErr := fmt.Errorf("status ID must be a positive integer, got: %s", args[1])
		if fmtErr := formatter.Error("INVALID_STATUS_ID", parseErr.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return parseErr
	}

	moved, err := cliInstance.App.TaskService.Transition(ctx, taskID, statusID)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("TRANSITION_ERROR",
			err.Error(),
			fmt.Sprintf("Run 'praxis task transition %d' to see allowed moves", taskID)); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", moved.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(taskJSON(moved))
	}

	status, err := cliInstance.App.StatusService.GetStatus(ctx, moved.StatusID)
	if err != nil {
		fmt.Printf("Task %d moved\n", moved.ID)
		return nil
	}
	fmt.Printf("Task %d moved to '%s'\n", moved.ID, status.Name)
	return nil
}

func listTransitions(cmd *cobra.Command, formatter *cli.OutputFormatter, cliInstance *cli.CLI, taskID int) error {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	statuses, err := cliInstance.App.TaskService.AvailableTransitions(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TRANSITION_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		for _, s := range statuses {
			fmt.Printf("%d\n", s.ID)
		}
		return nil
	}

	if jsonOutput {
		rows := make([]map[string]any, 0, len(statuses))
		for _, s := range statuses {
			rows = append(rows, map[string]any{
				"id":   s.ID,
				"name": s.Name,
				"rank": s.Rank.String(),
			})
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":     true,
			"transitions": rows,
		})
	}

	if len(statuses) == 0 {
		fmt.Printf("Task %d has no available transitions\n", taskID)
		return nil
	}

	fmt.Printf("Task %d can move to:\n\n", taskID)
	for _, s := range statuses {
		rendered := styles.RenderStatus(s.Name, s.Rank.IsCompleted(), s.Rank.IsInProgress())
		fmt.Printf("  [%d] %s (%s)\n", s.ID, rendered, s.Rank.String())
	}
	return nil
}
