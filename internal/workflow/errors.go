package workflow

import "errors"

// Status configuration errors
var (
	// ErrDuplicateRank indicates two configured statuses share a rank
	ErrDuplicateRank = errors.New("duplicate status rank")

	// ErrMultipleCompleted indicates more than one status has the terminal rank
	ErrMultipleCompleted = errors.New("more than one completed status configured")

	// ErrBrokenProgressChain indicates the in-progress ranks do not form a
	// contiguous chain starting at 2.1
	ErrBrokenProgressChain = errors.New("in-progress ranks must form a contiguous chain from 2.1")
)
