package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMessage_WireFormat(t *testing.T) {
	msg := Message{
		Version: ProtocolVersion,
		Type:    "event",
		Event: &Event{
			Type:       EventEntityChanged,
			Kind:       KindTask,
			EntityID:   42,
			Timestamp:  time.Now(),
			SequenceID: 3,
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Version != ProtocolVersion || decoded.Type != "event" {
		t.Errorf("envelope mismatch: %+v", decoded)
	}
	if decoded.Event == nil || decoded.Event.Kind != KindTask || decoded.Event.EntityID != 42 {
		t.Errorf("event payload mismatch: %+v", decoded.Event)
	}
	if decoded.Subscribe != nil {
		t.Error("subscribe should be omitted from event messages")
	}
}

func TestMessage_SubscribeOmitsEvent(t *testing.T) {
	msg := Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{Kind: KindInvoice},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Event != nil {
		t.Error("event should be omitted from subscribe messages")
	}
	if decoded.Subscribe == nil || decoded.Subscribe.Kind != KindInvoice {
		t.Errorf("subscription payload mismatch: %+v", decoded.Subscribe)
	}
}
