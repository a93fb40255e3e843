package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/digirix/praxis/internal/models"
)

// StatusRepo provides data access for the status configuration.
type StatusRepo struct {
	db *sql.DB
}

// Create inserts a new status.
func (r *StatusRepo) Create(ctx context.Context, name string, rank models.Rank) (*models.TaskStatus, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO task_statuses (name, rank) VALUES (?, ?)",
		name, int(rank),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.TaskStatus{ID: int(id), Name: name, Rank: rank}, nil
}

// GetAll retrieves the full status configuration ordered by rank.
func (r *StatusRepo) GetAll(ctx context.Context) ([]*models.TaskStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, rank FROM task_statuses ORDER BY rank",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.TaskStatus
	for rows.Next() {
		s := &models.TaskStatus{}
		var rank int
		if err := rows.Scan(&s.ID, &s.Name, &rank); err != nil {
			return nil, err
		}
		s.Rank = models.Rank(rank)
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// GetByID retrieves a single status.
func (r *StatusRepo) GetByID(ctx context.Context, id int) (*models.TaskStatus, error) {
	s := &models.TaskStatus{}
	var rank int
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, rank FROM task_statuses WHERE id = ?", id,
	).Scan(&s.ID, &s.Name, &rank)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Rank = models.Rank(rank)
	return s, nil
}

// Update changes a status's name and rank.
func (r *StatusRepo) Update(ctx context.Context, id int, name string, rank models.Rank) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE task_statuses SET name = ?, rank = ? WHERE id = ?",
		name, int(rank), id,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a status. Tasks referencing it keep the dangling FK
// rejected by SQLite, so callers must re-home tasks first.
func (r *StatusRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM task_statuses WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
