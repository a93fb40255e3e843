package status

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
)

// CreateCmd returns the status create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workflow status",
		Long: `Create a workflow status at the given rank.

Ranks are 1 (New), 2.1 through 2.9 (the progress chain) and 3
(Completed). The resulting set must keep exactly one Completed status
and an unbroken progress chain starting at 2.1.

Examples:
  praxis status create --name="Partner Review" --rank=2.3
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Status name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}
	cmd.Flags().String("rank", "", "Status rank (required)")
	if err := cmd.MarkFlagRequired("rank"); err != nil {
		slog.Error("error marking flag as required", "error", err)
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	name, _ := cmd.Flags().GetString("name")
	rank, _ := cmd.Flags().GetString("rank")

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

	created, err := cliInstance.App.StatusService.CreateStatus(ctx, name, rank)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("STATUS_CREATE_ERROR",
			err.Error(),
			"Run 'praxis status list' to see the current workflow"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", created.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(map[string]any{
			"id":   created.ID,
			"name": created.Name,
			"rank": created.Rank.String(),
		})
	}

	fmt.Printf("Created status %d: %s (%s)\n", created.ID, created.Name, created.Rank.String())
	return nil
}
