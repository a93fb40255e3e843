package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/digirix/praxis/internal/testutil"
)

// fixedClock returns a now func that advances by step on every call
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}

func TestStartStopTimer(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	taskID := testutil.CreateTestTask(t, repo, "Timed work")

	tracker := NewTracker(repo)
	tracker.now = fixedClock(time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC), 15*time.Minute)

	started, err := tracker.StartTimer(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if started.Hour() != 9 {
		t.Errorf("Expected start at 09:00, got %v", started)
	}

	entry, err := tracker.StopTimer(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if entry.Seconds != 900 {
		t.Errorf("Expected 900 seconds tracked, got %d", entry.Seconds)
	}
	if entry.ID == 0 {
		t.Error("Expected persisted entry to have an ID")
	}

	total, err := tracker.TotalTracked(context.Background(), taskID)
	if err != nil {
		t.Fatalf("TotalTracked failed: %v", err)
	}
	if total != 900 {
		t.Errorf("Expected total 900 seconds, got %d", total)
	}
}

func TestStartTimer_AlreadyRunning(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	taskID := testutil.CreateTestTask(t, repo, "Busy")

	tracker := NewTracker(repo)

	if _, err := tracker.StartTimer(context.Background(), taskID); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, err := tracker.StartTimer(context.Background(), taskID)
	if !errors.Is(err, ErrTimerAlreadyRunning) {
		t.Errorf("Expected ErrTimerAlreadyRunning, got %v", err)
	}
}

func TestStopTimer_NotRunning(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	taskID := testutil.CreateTestTask(t, repo, "Idle")

	tracker := NewTracker(repo)

	_, err := tracker.StopTimer(context.Background(), taskID)
	if !errors.Is(err, ErrTimerNotRunning) {
		t.Errorf("Expected ErrTimerNotRunning, got %v", err)
	}
}

func TestStartTimer_UnknownTask(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	tracker := NewTracker(repo)

	if _, err := tracker.StartTimer(context.Background(), 9999); err == nil {
		t.Error("Expected error starting a timer for a missing task")
	}
}

func TestTimersAreIndependentPerTask(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	taskA := testutil.CreateTestTask(t, repo, "Task A")
	taskB := testutil.CreateTestTask(t, repo, "Task B")

	tracker := NewTracker(repo)

	if _, err := tracker.StartTimer(context.Background(), taskA); err != nil {
		t.Fatalf("Start A failed: %v", err)
	}
	if _, err := tracker.StartTimer(context.Background(), taskB); err != nil {
		t.Fatalf("Start B failed: %v", err)
	}

	if _, running := tracker.Running(taskA); !running {
		t.Error("Expected timer running for task A")
	}

	if _, err := tracker.StopTimer(context.Background(), taskA); err != nil {
		t.Fatalf("Stop A failed: %v", err)
	}

	if _, running := tracker.Running(taskA); running {
		t.Error("Expected task A timer stopped")
	}
	if _, running := tracker.Running(taskB); !running {
		t.Error("Expected task B timer still running")
	}
}

func TestMultipleRunsAccumulate(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	taskID := testutil.CreateTestTask(t, repo, "Repeat work")

	tracker := NewTracker(repo)
	tracker.now = fixedClock(time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC), 10*time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := tracker.StartTimer(context.Background(), taskID); err != nil {
			t.Fatalf("Start %d failed: %v", i, err)
		}
		if _, err := tracker.StopTimer(context.Background(), taskID); err != nil {
			t.Fatalf("Stop %d failed: %v", i, err)
		}
	}

	total, err := tracker.TotalTracked(context.Background(), taskID)
	if err != nil {
		t.Fatalf("TotalTracked failed: %v", err)
	}
	if total != 1800 {
		t.Errorf("Expected 1800 accumulated seconds, got %d", total)
	}
}
