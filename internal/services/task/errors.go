package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle        = errors.New("task title cannot be empty")
	ErrTitleTooLong      = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID     = errors.New("invalid task ID")
	ErrInvalidStatusID   = errors.New("invalid status ID")
	ErrNegativeRate      = errors.New("service rate cannot be negative")
	ErrNegativeDiscount  = errors.New("discount amount cannot be negative")
	ErrInvalidTaxPercent = errors.New("tax percent must be between 0 and 100")

	// Business logic errors
	ErrNoInitialStatus    = errors.New("no initial status configured")
	ErrStatusNotFound     = errors.New("target status not found")
	ErrTransitionInFlight = errors.New("another transition for this task is already in progress")
)
