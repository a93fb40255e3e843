package database

import (
	"context"
	"database/sql"

	"github.com/digirix/praxis/internal/models"
)

// TimeEntryRepo provides data access for completed stopwatch runs.
type TimeEntryRepo struct {
	db *sql.DB
}

// Create records a finished time entry against a task.
func (r *TimeEntryRepo) Create(ctx context.Context, e *models.TimeEntry) (*models.TimeEntry, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO time_entries (task_id, started_at, stopped_at, seconds)
		 VALUES (?, ?, ?, ?)`,
		e.TaskID, e.StartedAt, e.StoppedAt, e.Seconds,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	created := *e
	created.ID = int(id)
	return &created, nil
}

// GetByTask retrieves all time entries for a task, oldest first.
func (r *TimeEntryRepo) GetByTask(ctx context.Context, taskID int) ([]*models.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, task_id, started_at, stopped_at, seconds
		 FROM time_entries WHERE task_id = ? ORDER BY started_at, id`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.TimeEntry
	for rows.Next() {
		e := &models.TimeEntry{}
		if err := rows.Scan(&e.ID, &e.TaskID, &e.StartedAt, &e.StoppedAt, &e.Seconds); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// TotalSeconds sums the tracked time for a task.
func (r *TimeEntryRepo) TotalSeconds(ctx context.Context, taskID int) (int64, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT SUM(seconds) FROM time_entries WHERE task_id = ?", taskID,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
