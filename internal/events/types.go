package events

import "time"

// ProtocolVersion is bumped when the wire format changes incompatibly.
const ProtocolVersion = 1

// EventType indicates what kind of message is being carried
type EventType string

const (
	EventEntityChanged EventType = "entity_changed"
	EventPing          EventType = "ping"
	EventPong          EventType = "pong"
)

// EntityKind names the cached collection an event invalidates
type EntityKind string

const (
	KindTask         EntityKind = "task"
	KindStatusConfig EntityKind = "status_config"
	KindInvoice      EntityKind = "invoice"
)

// Event is a change notification published after a successful mutation.
// Connected clients use it to invalidate their cached copy of the named
// entity: EntityID 0 invalidates the whole collection, a non-zero ID
// invalidates both the collection and the single-entity cache.
type Event struct {
	Type       EventType
	Kind       EntityKind
	EntityID   int
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}

// SubscribeMessage is sent by clients to filter the kinds they receive.
// An empty Kind subscribes to everything.
type SubscribeMessage struct {
	Kind EntityKind
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Version   int
	Type      string            // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
}
