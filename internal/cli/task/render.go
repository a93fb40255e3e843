package task

import (
	"github.com/digirix/praxis/internal/models"
)

// taskJSON shapes a task for the CLI's JSON output mode.
func taskJSON(t *models.Task) map[string]any {
	out := map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"is_admin":    t.IsAdmin,
		"type":        t.TaskType,
		"status_id":   t.StatusID,
		"recurring":   t.IsRecurring,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
	if t.DueDate != nil {
		out["due_date"] = t.DueDate
	}
	if t.ComplianceFrequency != "" {
		out["compliance"] = map[string]any{
			"frequency": t.ComplianceFrequency,
			"years":     t.ComplianceYears,
			"start":     t.ComplianceStart,
			"end":       t.ComplianceEnd,
			"duration":  t.ComplianceDuration,
		}
	}
	if !t.IsAdmin {
		out["billing"] = map[string]any{
			"rate":     t.ServiceRate,
			"currency": t.Currency,
			"discount": t.DiscountAmount,
			"tax":      t.TaxPercent,
		}
	}
	if t.InvoiceID != nil {
		out["invoice_id"] = *t.InvoiceID
	}
	return out
}

// summaryJSON shapes a task list row for JSON output.
func summaryJSON(s *models.TaskSummary) map[string]any {
	out := map[string]any{
		"id":          s.ID,
		"title":       s.Title,
		"is_admin":    s.IsAdmin,
		"type":        s.TaskType,
		"status_id":   s.StatusID,
		"status_name": s.StatusName,
		"status_rank": s.StatusRank.String(),
	}
	if s.DueDate != nil {
		out["due_date"] = s.DueDate
	}
	return out
}
