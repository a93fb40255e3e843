package status

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
	"github.com/digirix/praxis/internal/cli/styles"
)

// ListCmd returns the status list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow statuses",
		Long:  "List all workflow statuses ordered by rank.",
		RunE:  runList,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

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

	statuses, err := cliInstance.App.StatusService.ListStatuses(ctx)
	if err != nil {
		if fmtErr := formatter.Error("STATUS_FETCH_ERROR", err.Error()); fmtErr != nil {
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
			"success":  true,
			"statuses": rows,
		})
	}

	if len(statuses) == 0 {
		fmt.Println("No statuses configured")
		return nil
	}

	fmt.Printf("Workflow statuses:\n\n")
	for _, s := range statuses {
		rendered := styles.RenderStatus(s.Name, s.Rank.IsCompleted(), s.Rank.IsInProgress())
		fmt.Printf("  [%d] %-6s %s\n", s.ID, s.Rank.String(), rendered)
	}
	return nil
}
