package timer

import "errors"

// Stopwatch errors
var (
	ErrInvalidTaskID       = errors.New("invalid task ID")
	ErrTimerAlreadyRunning = errors.New("a timer is already running for this task")
	ErrTimerNotRunning     = errors.New("no timer is running for this task")
)
