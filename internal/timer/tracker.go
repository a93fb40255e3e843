// Package timer implements per-task stopwatches. Each Tracker owns its
// running timers; nothing is process-global, so servers and tests can hold
// independent instances.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/models"
)

// Tracker tracks running stopwatches keyed by task ID. Stopping a timer
// persists a TimeEntry through the repository.
type Tracker struct {
	repo database.DataStore

	mu      sync.Mutex
	running map[int]time.Time

	// now is swappable for tests
	now func() time.Time
}

// NewTracker creates a tracker backed by the given store
func NewTracker(repo database.DataStore) *Tracker {
	return &Tracker{
		repo:    repo,
		running: make(map[int]time.Time),
		now:     time.Now,
	}
}

// StartTimer begins a stopwatch for the task. At most one timer may run
// per task at a time.
func (t *Tracker) StartTimer(ctx context.Context, taskID int) (time.Time, error) {
	if taskID <= 0 {
		return time.Time{}, ErrInvalidTaskID
	}

	// Verify the task exists before accepting time against it
	if _, err := t.repo.GetTaskByID(ctx, taskID); err != nil {
		return time.Time{}, fmt.Errorf("failed to load task: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.running[taskID]; ok {
		return time.Time{}, ErrTimerAlreadyRunning
	}

	started := t.now()
	t.running[taskID] = started
	return started, nil
}

// StopTimer stops the task's stopwatch and persists the completed run as
// a TimeEntry
func (t *Tracker) StopTimer(ctx context.Context, taskID int) (*models.TimeEntry, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	t.mu.Lock()
	started, ok := t.running[taskID]
	if ok {
		delete(t.running, taskID)
	}
	t.mu.Unlock()

	if !ok {
		return nil, ErrTimerNotRunning
	}

	stopped := t.now()
	entry := &models.TimeEntry{
		TaskID:    taskID,
		StartedAt: started,
		StoppedAt: stopped,
		Seconds:   int64(stopped.Sub(started) / time.Second),
	}

	created, err := t.repo.CreateTimeEntry(ctx, entry)
	if err != nil {
		// The timer is already cleared; re-arm it so no time is lost
		t.mu.Lock()
		t.running[taskID] = started
		t.mu.Unlock()
		return nil, fmt.Errorf("failed to persist time entry: %w", err)
	}

	return created, nil
}

// Running reports whether a stopwatch is active for the task and when it
// started
func (t *Tracker) Running(taskID int) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	started, ok := t.running[taskID]
	return started, ok
}

// Elapsed returns the running duration for the task's active stopwatch,
// or zero when none is running
func (t *Tracker) Elapsed(taskID int) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	started, ok := t.running[taskID]
	if !ok {
		return 0
	}
	return t.now().Sub(started)
}

// TotalTracked returns the persisted seconds for the task across all
// completed runs. The active stopwatch, if any, is not included.
func (t *Tracker) TotalTracked(ctx context.Context, taskID int) (int64, error) {
	if taskID <= 0 {
		return 0, ErrInvalidTaskID
	}
	return t.repo.TotalTrackedSeconds(ctx, taskID)
}
