package models

import "time"

// Invoice represents a bill raised against a revenue task.
// Subtotal, TaxAmount and Total are always recomputed server-side from
// ServiceRate, DiscountAmount and TaxPercent.
type Invoice struct {
	ID             int
	InvoiceNumber  string
	TaskID         *int
	ServiceRate    float64
	Currency       string
	DiscountAmount float64
	TaxPercent     float64
	Subtotal       float64
	TaxAmount      float64
	Total          float64
	IssuedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TimeEntry records a completed stopwatch run against a task.
type TimeEntry struct {
	ID        int
	TaskID    int
	StartedAt time.Time
	StoppedAt time.Time
	Seconds   int64
}
