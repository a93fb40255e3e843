package status

import "errors"

// Domain errors for status configuration service
var (
	ErrEmptyName       = errors.New("status name cannot be empty")
	ErrInvalidStatusID = errors.New("invalid status ID")
)
