package database

import (
	"context"
	"database/sql"

	"github.com/digirix/praxis/internal/models"
)

// runMigrations creates the database schema and seeds the default status
// configuration if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	schema := `
	-- Status configuration consumed by the workflow rule.
	-- rank is the integer encoding stage*10+step (10=New, 2x=in progress, 30=Completed)
	CREATE TABLE IF NOT EXISTS task_statuses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		rank INTEGER NOT NULL UNIQUE
	);

	-- Invoices must exist before tasks for the invoice_id FK
	CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_number TEXT NOT NULL UNIQUE,
		task_id INTEGER,
		service_rate REAL NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'USD',
		discount_amount REAL NOT NULL DEFAULT 0,
		tax_percent REAL NOT NULL DEFAULT 0,
		subtotal REAL NOT NULL DEFAULT 0,
		tax_amount REAL NOT NULL DEFAULT 0,
		total REAL NOT NULL DEFAULT 0,
		issued_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		task_type TEXT NOT NULL DEFAULT 'Regular',
		status_id INTEGER NOT NULL,
		due_date DATETIME,
		compliance_frequency TEXT NOT NULL DEFAULT '',
		compliance_years TEXT NOT NULL DEFAULT '',
		compliance_start DATETIME,
		compliance_end DATETIME,
		compliance_duration TEXT NOT NULL DEFAULT '',
		is_recurring BOOLEAN NOT NULL DEFAULT 0,
		service_rate REAL NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'USD',
		discount_amount REAL NOT NULL DEFAULT 0,
		tax_percent REAL NOT NULL DEFAULT 0,
		invoice_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (status_id) REFERENCES task_statuses(id),
		FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS time_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		stopped_at DATETIME NOT NULL,
		seconds INTEGER NOT NULL,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	-- Indexes for efficient queries
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_invoice ON tasks(invoice_id);
	CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id);
	CREATE INDEX IF NOT EXISTS idx_invoices_task ON invoices(task_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}

	return seedDefaultStatuses(ctx, db)
}

// seedDefaultStatuses inserts the default workflow configuration if the
// task_statuses table is empty
func seedDefaultStatuses(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM task_statuses").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name string
		rank models.Rank
	}{
		{"New", models.RankNew},
		{"In Progress", models.Rank(21)},
		{"Review", models.Rank(22)},
		{"Completed", models.RankCompleted},
	}

	for _, s := range defaults {
		_, err := db.ExecContext(ctx,
			"INSERT INTO task_statuses (name, rank) VALUES (?, ?)",
			s.name, int(s.rank),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
