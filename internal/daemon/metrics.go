package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety.
// EventsReceived counts events arriving from publishers, EventsSent counts
// per-client deliveries, BroadcastsTotal counts fan-out rounds.
type Metrics struct {
	EventsSent       atomic.Int64
	EventsReceived   atomic.Int64
	BroadcastsTotal  atomic.Int64
	DroppedClients   atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncEventsSent increments the events sent counter
func (m *Metrics) IncEventsSent() {
	m.EventsSent.Add(1)
}

// IncEventsReceived increments the events received counter
func (m *Metrics) IncEventsReceived() {
	m.EventsReceived.Add(1)
}

// IncBroadcastsTotal increments the broadcast fan-out counter
func (m *Metrics) IncBroadcastsTotal() {
	m.BroadcastsTotal.Add(1)
}

// IncDroppedClients increments the counter of clients removed from the
// broadcast set (disconnects, stale peers, shutdown)
func (m *Metrics) IncDroppedClients() {
	m.DroppedClients.Add(1)
}

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// GetEventsSent returns the total events sent
func (m *Metrics) GetEventsSent() int64 {
	return m.EventsSent.Load()
}

// GetEventsReceived returns the total events received
func (m *Metrics) GetEventsReceived() int64 {
	return m.EventsReceived.Load()
}

// GetBroadcastsTotal returns the total broadcast fan-outs
func (m *Metrics) GetBroadcastsTotal() int64 {
	return m.BroadcastsTotal.Load()
}

// GetDroppedClients returns the total clients dropped
func (m *Metrics) GetDroppedClients() int64 {
	return m.DroppedClients.Load()
}

// GetConnectedClients returns the current connected clients count
func (m *Metrics) GetConnectedClients() int32 {
	return m.ConnectedClients.Load()
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsSent       int64     `json:"events_sent"`
	EventsReceived   int64     `json:"events_received"`
	BroadcastsTotal  int64     `json:"broadcasts_total"`
	DroppedClients   int64     `json:"dropped_clients"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsSent:       m.GetEventsSent(),
		EventsReceived:   m.GetEventsReceived(),
		BroadcastsTotal:  m.GetBroadcastsTotal(),
		DroppedClients:   m.GetDroppedClients(),
		ConnectedClients: m.GetConnectedClients(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).String(),
	}
}
