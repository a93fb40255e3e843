package status

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
)

// UpdateCmd returns the status update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <status_id>",
		Short: "Rename or re-rank a workflow status",
		Long: `Rename a status or move it to a different rank.

The change is rejected if it would break the progress chain or leave
the workflow without exactly one Completed status.

Examples:
  praxis status update 3 --name="Partner Review"
  praxis status update 3 --rank=2.2
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New status name")
	cmd.Flags().String("rank", "", "New status rank")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	statusID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_STATUS_ID",
			err.Error(),
			"Usage: praxis status update <id> [flags]"); fmtErr != nil {
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

	// Missing flags keep the current values.
	name, _ := cmd.Flags().GetString("name")
	rank, _ := cmd.Flags().GetString("rank")
	if name == "" || rank == "" {
		current, err := cliInstance.App.StatusService.GetStatus(ctx, statusID)
		if err != nil {
			if fmtErr := formatter.Error("STATUS_NOT_FOUND",
				fmt.Sprintf("status %d not found", statusID)); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			return err
		}
		if name == "" {
			name = current.Name
		}
		if rank == "" {
			rank = current.Rank.String()
		}
	}

	updated, err := cliInstance.App.StatusService.UpdateStatus(ctx, statusID, name, rank)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("STATUS_UPDATE_ERROR",
			err.Error(),
			"Run 'praxis status list' to see the current workflow"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", updated.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(map[string]any{
			"id":   updated.ID,
			"name": updated.Name,
			"rank": updated.Rank.String(),
		})
	}

	fmt.Printf("Updated status %d: %s (%s)\n", updated.ID, updated.Name, updated.Rank.String())
	return nil
}
