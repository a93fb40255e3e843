package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/models"

	_ "modernc.org/sqlite"
)

// SetupTestDB creates a throwaway database file under t.TempDir and runs
// the real migrations against it, so tests exercise the same schema the
// application does.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "praxis-test.db")

	db, err := database.InitDB(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Failed to init test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// SetupTestRepo wraps SetupTestDB with the repository layer
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestTask inserts a minimal task in the seeded "New" status and
// returns its ID
func CreateTestTask(t *testing.T, repo *database.Repository, title string) int {
	t.Helper()

	statuses, err := repo.GetAllStatuses(context.Background())
	if err != nil {
		t.Fatalf("Failed to load statuses: %v", err)
	}

	var statusID int
	for _, s := range statuses {
		if s.Rank == models.RankNew {
			statusID = s.ID
			break
		}
	}
	if statusID == 0 {
		t.Fatal("Seeded New status not found")
	}

	task, err := repo.CreateTask(context.Background(), &models.Task{
		Title:    title,
		TaskType: models.DefaultTaskType,
		StatusID: statusID,
		Currency: models.DefaultCurrency,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}

	return task.ID
}

// CreateTestStatus inserts a status with the given name and rank wire form
func CreateTestStatus(t *testing.T, repo *database.Repository, name, rank string) int {
	t.Helper()

	r, err := models.ParseRank(rank)
	if err != nil {
		t.Fatalf("Invalid test rank %q: %v", rank, err)
	}

	status, err := repo.CreateStatus(context.Background(), name, r)
	if err != nil {
		t.Fatalf("Failed to create test status: %v", err)
	}

	return status.ID
}

// CreateTestInvoice inserts an invoice with precomputed totals
func CreateTestInvoice(t *testing.T, repo *database.Repository, number string, total float64) int {
	t.Helper()

	now := time.Now()
	inv, err := repo.CreateInvoice(context.Background(), &models.Invoice{
		InvoiceNumber: number,
		Currency:      models.DefaultCurrency,
		Subtotal:      total,
		Total:         total,
		IssuedAt:      &now,
	})
	if err != nil {
		t.Fatalf("Failed to create test invoice: %v", err)
	}

	return inv.ID
}
