package server

import (
	"sync/atomic"
	"time"
)

// Metrics tracks API statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal atomic.Int64
	ErrorsTotal   atomic.Int64
	StartTime     time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncRequestsTotal increments the requests counter
func (m *Metrics) IncRequestsTotal() {
	m.RequestsTotal.Add(1)
}

// IncErrorsTotal increments the error responses counter
func (m *Metrics) IncErrorsTotal() {
	m.ErrorsTotal.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of API metrics
type MetricsSnapshot struct {
	RequestsTotal int64     `json:"requests_total"`
	ErrorsTotal   int64     `json:"errors_total"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal: m.RequestsTotal.Load(),
		ErrorsTotal:   m.ErrorsTotal.Load(),
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime).String(),
	}
}
