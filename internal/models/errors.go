package models

import "errors"

// Domain-specific errors for workflow and configuration rules
var (
	// ErrInvalidRank indicates a rank outside the New/InProgress/Completed bands
	ErrInvalidRank = errors.New("rank must be 1, 2.1-2.9 or 3")

	// ErrCompletedStatusNotFound indicates that no status with rank 3 is configured
	ErrCompletedStatusNotFound = errors.New("completed status not found")

	// ErrTerminalStatus indicates an attempt to transition out of Completed
	ErrTerminalStatus = errors.New("task is already completed")

	// ErrTransitionNotAllowed indicates the target status is not reachable
	// from the task's current status
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)
