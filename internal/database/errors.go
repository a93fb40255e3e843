package database

import "errors"

// Repository-level errors
var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("record not found")
)
