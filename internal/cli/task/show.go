package task

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/cli"
	"github.com/digirix/praxis/internal/cli/styles"
	"github.com/digirix/praxis/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task_id>",
		Short: "Show task details",
		Long:  "Display all details of a task: description, compliance schedule, billing and tracked time.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := cli.NewFormatter(jsonOutput, quietMode)

	taskID, err := cli.ParseIDArg(args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			err.Error(),
			"Usage: praxis task show <id>"); fmtErr != nil {
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

	t, err := cliInstance.App.TaskService.GetTask(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	status, err := cliInstance.App.StatusService.GetStatus(ctx, t.StatusID)
	if err != nil {
		if fmtErr := formatter.Error("STATUS_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	trackedSeconds, err := cliInstance.App.Tracker.TotalTracked(ctx, taskID)
	if err != nil {
		trackedSeconds = 0
	}

	if quietMode {
		fmt.Printf("%d\n", t.ID)
		return nil
	}

	if jsonOutput {
		data := taskJSON(t)
		data["status_name"] = status.Name
		data["status_rank"] = status.Rank.String()
		data["tracked_seconds"] = trackedSeconds
		return formatter.Success(data)
	}

	return outputHuman(t, status, trackedSeconds)
}

func outputHuman(t *models.Task, status *models.TaskStatus, trackedSeconds int64) error {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Task %d: %s", t.ID, t.Title)))
	content.WriteString("\n\n")

	statusLine := fmt.Sprintf("%s %s",
		styles.LabelStyle.Render("Status:"),
		styles.RenderStatus(status.Name, status.Rank.IsCompleted(), status.Rank.IsInProgress()),
	)
	content.WriteString(statusLine + "\n")

	kind := "Revenue"
	if t.IsAdmin {
		kind = "Admin"
	}
	content.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		styles.LabelStyle.Render("Kind:"),
		styles.ValueStyle.Render(kind),
		styles.LabelStyle.Render("Priority:"),
		styles.ValueStyle.Render(t.TaskType),
	))

	if t.DueDate != nil {
		content.WriteString(fmt.Sprintf("%s %s\n",
			styles.LabelStyle.Render("Due:"),
			styles.ValueStyle.Render(cli.FormatDate(t.DueDate)),
		))
	}

	// Description rendered as markdown
	content.WriteString("\n")
	content.WriteString(styles.SectionStyle.Render("Description"))
	content.WriteString("\n")
	content.WriteString(styles.RenderDescription(t.Description, styles.CardWidth-8))
	content.WriteString("\n")

	if t.ComplianceFrequency != "" {
		content.WriteString("\n")
		content.WriteString(styles.SectionStyle.Render("Compliance"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%s %s",
			styles.LabelStyle.Render("Frequency:"),
			styles.ValueStyle.Render(t.ComplianceFrequency)))
		if t.IsRecurring {
			content.WriteString("  " + styles.InProgressStyle.Render("recurring"))
		}
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%s %s - %s",
			styles.LabelStyle.Render("Period:"),
			styles.ValueStyle.Render(cli.FormatDate(t.ComplianceStart)),
			styles.ValueStyle.Render(cli.FormatDate(t.ComplianceEnd))))
		if t.ComplianceDuration != "" {
			content.WriteString("  (" + t.ComplianceDuration + ")")
		}
		content.WriteString("\n")
	}

	if !t.IsAdmin {
		content.WriteString("\n")
		content.WriteString(styles.SectionStyle.Render("Billing"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%s %s  %s %s  %s %.0f%%\n",
			styles.LabelStyle.Render("Rate:"),
			styles.ValueStyle.Render(cli.FormatMoney(t.ServiceRate, t.Currency)),
			styles.LabelStyle.Render("Discount:"),
			styles.ValueStyle.Render(cli.FormatMoney(t.DiscountAmount, t.Currency)),
			styles.LabelStyle.Render("Tax:"),
			t.TaxPercent,
		))
		if t.InvoiceID != nil {
			content.WriteString(fmt.Sprintf("%s %d\n",
				styles.LabelStyle.Render("Invoice:"), *t.InvoiceID))
		}
	}

	if trackedSeconds > 0 {
		content.WriteString(fmt.Sprintf("\n%s %s\n",
			styles.LabelStyle.Render("Tracked:"),
			styles.ValueStyle.Render(formatDuration(trackedSeconds)),
		))
	}

	if !t.CreatedAt.IsZero() {
		content.WriteString(fmt.Sprintf("\n%s %s\n",
			styles.LabelStyle.Render("Created:"),
			styles.SubtitleStyle.Render(t.CreatedAt.Format("Jan 2, 2006 3:04 PM")),
		))
	}

	fmt.Println(styles.RenderCard(content.String()))
	return nil
}

func formatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
