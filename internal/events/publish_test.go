package events

import (
	"context"
	"errors"
	"testing"
)

// mockRetryPublisher is a mock implementation of EventPublisher for testing
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

// Unused interface methods
func (m *mockRetryPublisher) Connect(ctx context.Context) error                { return nil }
func (m *mockRetryPublisher) Listen(ctx context.Context) (<-chan Event, error) { return nil, nil }
func (m *mockRetryPublisher) Subscribe(kind EntityKind) error                  { return nil }
func (m *mockRetryPublisher) Close() error                                     { return nil }

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 0}
	event := Event{
		Type:     EventEntityChanged,
		Kind:     KindTask,
		EntityID: 7,
	}

	err := PublishWithRetry(mock, event, 3)
	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}

	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}

	if mock.lastEvent.Kind != KindTask || mock.lastEvent.EntityID != 7 {
		t.Errorf("Expected task event for entity 7, got %s/%d",
			mock.lastEvent.Kind, mock.lastEvent.EntityID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	// Fail first 2 attempts, succeed on 3rd
	mock := &mockRetryPublisher{failUntil: 2}
	event := Event{Type: EventEntityChanged, Kind: KindInvoice}

	err := PublishWithRetry(mock, event, 3)
	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_AllAttemptsFail(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 10}
	event := Event{Type: EventEntityChanged, Kind: KindStatusConfig}

	err := PublishWithRetry(mock, event, 3)
	if err == nil {
		t.Error("Expected error when all attempts fail")
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	// Nil client is the non-daemon mode: publishing silently succeeds
	err := PublishWithRetry(nil, Event{Type: EventEntityChanged, Kind: KindTask}, 3)
	if err != nil {
		t.Errorf("Expected nil error for nil client, got: %v", err)
	}
}
