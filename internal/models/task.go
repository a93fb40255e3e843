package models

import "time"

// Task represents a single unit of work being tracked, either an
// administrative task or a client-facing revenue task.
type Task struct {
	ID          int
	Title       string
	Description string
	IsAdmin     bool
	TaskType    string // priority label: Regular, Medium, Urgent
	StatusID    int
	DueDate     *time.Time

	// Compliance fields, set only for revenue tasks with a recurring
	// obligation. EndDate and Duration are derived from Frequency and
	// StartDate, never entered directly.
	ComplianceFrequency string
	ComplianceYears     string
	ComplianceStart     *time.Time
	ComplianceEnd       *time.Time
	ComplianceDuration  string
	IsRecurring         bool

	// Billing fields, revenue tasks only.
	ServiceRate    float64
	Currency       string
	DiscountAmount float64
	TaxPercent     float64
	InvoiceID      *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskSummary is a DTO for task list views. It carries the resolved status
// so list rows can render without a second lookup.
type TaskSummary struct {
	ID         int
	Title      string
	IsAdmin    bool
	TaskType   string
	StatusID   int
	StatusName string
	StatusRank Rank
	DueDate    *time.Time
}
