package status

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
)

// DeleteCmd returns the status delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <status_id>",
		Short: "Delete a workflow status",
		Long: `Delete a workflow status.

Only statuses whose removal keeps the workflow valid can be deleted:
the Completed status and statuses in the middle of the progress chain
are rejected.
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	statusID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_STATUS_ID",
			err.Error(),
			"Usage: praxis status delete <id>"); fmtErr != nil {
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

	if err := cliInstance.App.StatusService.DeleteStatus(ctx, statusID); err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("STATUS_DELETE_ERROR",
			err.Error(),
			"Only the tail of the progress chain can be removed"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", statusID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(map[string]any{"id": statusID, "deleted": true})
	}

	fmt.Printf("Deleted status %d\n", statusID)
	return nil
}
