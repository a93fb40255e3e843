package database

import (
	"context"
	"database/sql"

	"github.com/digirix/praxis/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding; the
// wrapper methods below disambiguate the repos' overlapping method names
// and form the DataStore implementation.
type Repository struct {
	*StatusRepo
	*TaskRepo
	*InvoiceRepo
	*TimeEntryRepo
}

// NewRepository creates a new Repository instance wrapping the given
// database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StatusRepo:    &StatusRepo{db: db},
		TaskRepo:      &TaskRepo{db: db},
		InvoiceRepo:   &InvoiceRepo{db: db},
		TimeEntryRepo: &TimeEntryRepo{db: db},
	}
}

// Status configuration

func (r *Repository) CreateStatus(ctx context.Context, name string, rank models.Rank) (*models.TaskStatus, error) {
	return r.StatusRepo.Create(ctx, name, rank)
}

func (r *Repository) GetAllStatuses(ctx context.Context) ([]*models.TaskStatus, error) {
	return r.StatusRepo.GetAll(ctx)
}

func (r *Repository) GetStatusByID(ctx context.Context, id int) (*models.TaskStatus, error) {
	return r.StatusRepo.GetByID(ctx, id)
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, name string, rank models.Rank) error {
	return r.StatusRepo.Update(ctx, id, name, rank)
}

func (r *Repository) DeleteStatus(ctx context.Context, id int) error {
	return r.StatusRepo.Delete(ctx, id)
}

// Tasks

func (r *Repository) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, t)
}

func (r *Repository) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	return r.TaskRepo.GetByID(ctx, id)
}

func (r *Repository) GetAllTasks(ctx context.Context) ([]*models.Task, error) {
	return r.TaskRepo.GetAll(ctx)
}

func (r *Repository) GetTaskSummaries(ctx context.Context) ([]*models.TaskSummary, error) {
	return r.TaskRepo.GetSummaries(ctx)
}

func (r *Repository) UpdateTask(ctx context.Context, t *models.Task) error {
	return r.TaskRepo.Update(ctx, t)
}

func (r *Repository) UpdateTaskStatus(ctx context.Context, taskID, statusID int) error {
	return r.TaskRepo.UpdateStatus(ctx, taskID, statusID)
}

func (r *Repository) DeleteTask(ctx context.Context, id int) error {
	return r.TaskRepo.Delete(ctx, id)
}

// Invoices

func (r *Repository) CreateInvoice(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	return r.InvoiceRepo.Create(ctx, inv)
}

func (r *Repository) GetInvoiceByID(ctx context.Context, id int) (*models.Invoice, error) {
	return r.InvoiceRepo.GetByID(ctx, id)
}

func (r *Repository) GetAllInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return r.InvoiceRepo.GetAll(ctx)
}

func (r *Repository) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	return r.InvoiceRepo.Update(ctx, inv)
}

// Time entries

func (r *Repository) CreateTimeEntry(ctx context.Context, e *models.TimeEntry) (*models.TimeEntry, error) {
	return r.TimeEntryRepo.Create(ctx, e)
}

func (r *Repository) GetTimeEntriesByTask(ctx context.Context, taskID int) ([]*models.TimeEntry, error) {
	return r.TimeEntryRepo.GetByTask(ctx, taskID)
}

func (r *Repository) TotalTrackedSeconds(ctx context.Context, taskID int) (int64, error) {
	return r.TimeEntryRepo.TotalSeconds(ctx, taskID)
}
