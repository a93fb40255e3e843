package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: database errors, daemon errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or malformed arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: task, status or invoice IDs that don't exist.
	ExitNotFound = 3

	// ExitValidation indicates input failed validation rules.
	// Use for: bad ranks, negative amounts, unknown frequencies,
	// malformed year text.
	ExitValidation = 4

	// ExitConflict indicates the operation conflicts with current state.
	// Use for: illegal status transitions, broken progress chains,
	// double-started timers, already-invoiced tasks.
	ExitConflict = 5
)
