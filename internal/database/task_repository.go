package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/digirix/praxis/internal/models"
)

// TaskRepo provides data access for tasks.
type TaskRepo struct {
	db *sql.DB
}

const taskColumns = `id, title, description, is_admin, task_type, status_id, due_date,
	compliance_frequency, compliance_years, compliance_start, compliance_end,
	compliance_duration, is_recurring, service_rate, currency, discount_amount,
	tax_percent, invoice_id, created_at, updated_at`

// Create inserts a task and returns it with generated fields populated.
func (r *TaskRepo) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, is_admin, task_type, status_id, due_date,
			compliance_frequency, compliance_years, compliance_start, compliance_end,
			compliance_duration, is_recurring, service_rate, currency, discount_amount,
			tax_percent, invoice_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.IsAdmin, t.TaskType, t.StatusID, nullTime(t.DueDate),
		t.ComplianceFrequency, t.ComplianceYears, nullTime(t.ComplianceStart),
		nullTime(t.ComplianceEnd), t.ComplianceDuration, t.IsRecurring,
		t.ServiceRate, t.Currency, t.DiscountAmount, t.TaxPercent, nullInt(t.InvoiceID),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, int(id))
}

// GetByID retrieves a single task.
func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// GetAll retrieves all tasks ordered by creation time.
func (r *TaskRepo) GetAll(ctx context.Context) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks ORDER BY created_at, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetSummaries retrieves lightweight task rows joined with their status,
// for list views.
func (r *TaskRepo) GetSummaries(ctx context.Context) ([]*models.TaskSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.title, t.is_admin, t.task_type, t.status_id, s.name, s.rank, t.due_date
		 FROM tasks t
		 JOIN task_statuses s ON s.id = t.status_id
		 ORDER BY s.rank, t.due_date IS NULL, t.due_date, t.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.TaskSummary
	for rows.Next() {
		s := &models.TaskSummary{}
		var rank int
		var due sql.NullTime
		if err := rows.Scan(&s.ID, &s.Title, &s.IsAdmin, &s.TaskType,
			&s.StatusID, &s.StatusName, &rank, &due); err != nil {
			return nil, err
		}
		s.StatusRank = models.Rank(rank)
		s.DueDate = timePtr(due)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// Update rewrites all mutable task fields.
func (r *TaskRepo) Update(ctx context.Context, t *models.Task) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, is_admin = ?, task_type = ?, due_date = ?,
			compliance_frequency = ?, compliance_years = ?, compliance_start = ?,
			compliance_end = ?, compliance_duration = ?, is_recurring = ?,
			service_rate = ?, currency = ?, discount_amount = ?, tax_percent = ?,
			invoice_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		t.Title, t.Description, t.IsAdmin, t.TaskType, nullTime(t.DueDate),
		t.ComplianceFrequency, t.ComplianceYears, nullTime(t.ComplianceStart),
		nullTime(t.ComplianceEnd), t.ComplianceDuration, t.IsRecurring,
		t.ServiceRate, t.Currency, t.DiscountAmount, t.TaxPercent,
		nullInt(t.InvoiceID), t.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// UpdateStatus changes only the task's status. Used for pure transitions.
func (r *TaskRepo) UpdateStatus(ctx context.Context, taskID, statusID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		statusID, taskID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a task from the database.
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// scanner abstracts sql.Row and sql.Rows for scanTask.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*models.Task, error) {
	t := &models.Task{}
	var due, complianceStart, complianceEnd sql.NullTime
	var invoiceID sql.NullInt64

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.IsAdmin, &t.TaskType, &t.StatusID, &due,
		&t.ComplianceFrequency, &t.ComplianceYears, &complianceStart, &complianceEnd,
		&t.ComplianceDuration, &t.IsRecurring, &t.ServiceRate, &t.Currency,
		&t.DiscountAmount, &t.TaxPercent, &invoiceID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.DueDate = timePtr(due)
	t.ComplianceStart = timePtr(complianceStart)
	t.ComplianceEnd = timePtr(complianceEnd)
	t.InvoiceID = intPtr(invoiceID)
	return t, nil
}
