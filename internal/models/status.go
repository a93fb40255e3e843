package models

// TaskStatus represents one stage a task can occupy in the workflow.
// Statuses are configured by administrators and are read-only from the
// task workflow's perspective.
type TaskStatus struct {
	ID   int
	Name string
	Rank Rank
}
