package events

import (
	"context"
	"testing"
	"time"
)

// TestNilClientMethods verifies that calling methods on a nil *Client doesn't panic
func TestNilClientMethods(t *testing.T) {
	var client *Client // nil client

	t.Run("Listen on nil client", func(t *testing.T) {
		ctx := context.Background()
		eventChan, err := client.Listen(ctx)
		if err == nil {
			t.Error("expected error from Listen on nil client")
		}
		// Channel should be closed
		select {
		case _, ok := <-eventChan:
			if ok {
				t.Error("expected closed channel from nil client Listen")
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("channel should be immediately readable (closed)")
		}
	})

	t.Run("Subscribe on nil client", func(t *testing.T) {
		if err := client.Subscribe(KindTask); err == nil {
			t.Error("expected error from Subscribe on nil client")
		}
	})

	t.Run("SendEvent on nil client", func(t *testing.T) {
		if err := client.SendEvent(Event{Type: EventEntityChanged}); err == nil {
			t.Error("expected error from SendEvent on nil client")
		}
	})

	t.Run("Connect on nil client", func(t *testing.T) {
		if err := client.Connect(context.Background()); err == nil {
			t.Error("expected error from Connect on nil client")
		}
	})

	t.Run("Close on nil client", func(t *testing.T) {
		if err := client.Close(); err != nil {
			t.Errorf("Close should return nil error on nil client, got: %v", err)
		}
	})
}
