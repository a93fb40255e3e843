package database

import (
	"context"

	"github.com/digirix/praxis/internal/models"
)

// StatusStore covers the status configuration consumed by the workflow rule.
type StatusStore interface {
	CreateStatus(ctx context.Context, name string, rank models.Rank) (*models.TaskStatus, error)
	GetAllStatuses(ctx context.Context) ([]*models.TaskStatus, error)
	GetStatusByID(ctx context.Context, id int) (*models.TaskStatus, error)
	UpdateStatus(ctx context.Context, id int, name string, rank models.Rank) error
	DeleteStatus(ctx context.Context, id int) error
}

// TaskStore covers task persistence.
type TaskStore interface {
	CreateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	GetAllTasks(ctx context.Context) ([]*models.Task, error)
	GetTaskSummaries(ctx context.Context) ([]*models.TaskSummary, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	UpdateTaskStatus(ctx context.Context, taskID, statusID int) error
	DeleteTask(ctx context.Context, id int) error
}

// InvoiceStore covers invoice persistence.
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv *models.Invoice) (*models.Invoice, error)
	GetInvoiceByID(ctx context.Context, id int) (*models.Invoice, error)
	GetAllInvoices(ctx context.Context) ([]*models.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *models.Invoice) error
}

// TimeEntryStore covers persisted stopwatch runs.
type TimeEntryStore interface {
	CreateTimeEntry(ctx context.Context, e *models.TimeEntry) (*models.TimeEntry, error)
	GetTimeEntriesByTask(ctx context.Context, taskID int) ([]*models.TimeEntry, error)
	TotalTrackedSeconds(ctx context.Context, taskID int) (int64, error)
}

// DataStore defines the unified interface for all data operations needed
// by the services. It is composed of smaller, domain-specific interfaces
// so consumers can depend on just the stores they use.
type DataStore interface {
	StatusStore
	TaskStore
	InvoiceStore
	TimeEntryStore
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
