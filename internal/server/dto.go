package server

import (
	"fmt"
	"time"

	"github.com/digirix/praxis/internal/compliance"
	"github.com/digirix/praxis/internal/models"
)

// Wire formats for dates. Timestamps travel as RFC 3339; plain dates are
// also accepted on input.
const dateOnly = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", value)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// taskPayload is the wire form of a task
type taskPayload struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	Description         string  `json:"description,omitempty"`
	IsAdmin             bool    `json:"isAdmin"`
	TaskType            string  `json:"taskType"`
	StatusID            int     `json:"statusId"`
	DueDate             *string `json:"dueDate,omitempty"`
	ComplianceFrequency string  `json:"complianceFrequency,omitempty"`
	ComplianceYears     string  `json:"complianceYears,omitempty"`
	ComplianceYearsHint string  `json:"complianceYearsHint,omitempty"`
	ComplianceStart     *string `json:"complianceStartDate,omitempty"`
	ComplianceEnd       *string `json:"complianceEndDate,omitempty"`
	ComplianceDuration  string  `json:"complianceDuration,omitempty"`
	IsRecurring         bool    `json:"isRecurring"`
	ServiceRate         float64 `json:"serviceRate"`
	Currency            string  `json:"currency"`
	DiscountAmount      float64 `json:"discountAmount"`
	TaxPercent          float64 `json:"taxPercent"`
	InvoiceID           *int    `json:"invoiceId,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

func toTaskPayload(t *models.Task) taskPayload {
	// Advisory only: a year-count mismatch never blocks a save.
	var yearsHint string
	if t.ComplianceFrequency != "" && t.ComplianceYears != "" {
		if f, err := compliance.ParseFrequency(t.ComplianceFrequency); err == nil {
			yearsHint = compliance.YearCountHint(f, t.ComplianceYears)
		}
	}

	return taskPayload{
		ID:                  t.ID,
		Title:               t.Title,
		Description:         t.Description,
		IsAdmin:             t.IsAdmin,
		TaskType:            t.TaskType,
		StatusID:            t.StatusID,
		DueDate:             formatTimePtr(t.DueDate),
		ComplianceFrequency: t.ComplianceFrequency,
		ComplianceYears:     t.ComplianceYears,
		ComplianceYearsHint: yearsHint,
		ComplianceStart:     formatTimePtr(t.ComplianceStart),
		ComplianceEnd:       formatTimePtr(t.ComplianceEnd),
		ComplianceDuration:  t.ComplianceDuration,
		IsRecurring:         t.IsRecurring,
		ServiceRate:         t.ServiceRate,
		Currency:            t.Currency,
		DiscountAmount:      t.DiscountAmount,
		TaxPercent:          t.TaxPercent,
		InvoiceID:           t.InvoiceID,
		CreatedAt:           formatTime(t.CreatedAt),
		UpdatedAt:           formatTime(t.UpdatedAt),
	}
}

// taskSummaryPayload is the wire form of a task list row
type taskSummaryPayload struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	IsAdmin    bool    `json:"isAdmin"`
	TaskType   string  `json:"taskType"`
	StatusID   int     `json:"statusId"`
	StatusName string  `json:"statusName"`
	StatusRank string  `json:"statusRank"`
	DueDate    *string `json:"dueDate,omitempty"`
}

func toTaskSummaryPayload(s *models.TaskSummary) taskSummaryPayload {
	return taskSummaryPayload{
		ID:         s.ID,
		Title:      s.Title,
		IsAdmin:    s.IsAdmin,
		TaskType:   s.TaskType,
		StatusID:   s.StatusID,
		StatusName: s.StatusName,
		StatusRank: s.StatusRank.String(),
		DueDate:    formatTimePtr(s.DueDate),
	}
}

// statusPayload is the wire form of a configured status. Rank travels as
// its decimal string form ("1", "2.1", "3").
type statusPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Rank string `json:"rank"`
}

func toStatusPayload(s *models.TaskStatus) statusPayload {
	return statusPayload{
		ID:   s.ID,
		Name: s.Name,
		Rank: s.Rank.String(),
	}
}

// invoicePayload is the wire form of an invoice
type invoicePayload struct {
	ID             int     `json:"id"`
	InvoiceNumber  string  `json:"invoiceNumber"`
	TaskID         *int    `json:"taskId,omitempty"`
	ServiceRate    float64 `json:"serviceRate"`
	Currency       string  `json:"currency"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxPercent     float64 `json:"taxPercent"`
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"taxAmount"`
	Total          float64 `json:"total"`
	IssuedAt       *string `json:"issuedAt,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toInvoicePayload(inv *models.Invoice) invoicePayload {
	return invoicePayload{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		TaskID:         inv.TaskID,
		ServiceRate:    inv.ServiceRate,
		Currency:       inv.Currency,
		DiscountAmount: inv.DiscountAmount,
		TaxPercent:     inv.TaxPercent,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		IssuedAt:       formatTimePtr(inv.IssuedAt),
		CreatedAt:      formatTime(inv.CreatedAt),
		UpdatedAt:      formatTime(inv.UpdatedAt),
	}
}

// timeEntryPayload is the wire form of a completed stopwatch run
type timeEntryPayload struct {
	ID        int    `json:"id"`
	TaskID    int    `json:"taskId"`
	StartedAt string `json:"startedAt"`
	StoppedAt string `json:"stoppedAt"`
	Seconds   int64  `json:"seconds"`
}

func toTimeEntryPayload(e *models.TimeEntry) timeEntryPayload {
	return timeEntryPayload{
		ID:        e.ID,
		TaskID:    e.TaskID,
		StartedAt: formatTime(e.StartedAt),
		StoppedAt: formatTime(e.StoppedAt),
		Seconds:   e.Seconds,
	}
}
