package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/digirix/praxis/internal/compliance"
	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/models"
	"github.com/digirix/praxis/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seededStatusID returns the ID of the seeded status with the given rank
func seededStatusID(t *testing.T, repo *database.Repository, rank models.Rank) int {
	t.Helper()

	statuses, err := repo.GetAllStatuses(context.Background())
	if err != nil {
		t.Fatalf("Failed to load statuses: %v", err)
	}
	for _, s := range statuses {
		if s.Rank == rank {
			return s.ID
		}
	}
	t.Fatalf("No seeded status with rank %v", rank)
	return 0
}

// ============================================================================
// TEST CASES - CREATE
// ============================================================================

func TestCreateTask(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	result, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:       "File VAT return",
		Description: "Quarterly VAT for Acme Ltd",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.ID == 0 {
		t.Error("Expected task ID to be set")
	}
	if result.Title != "File VAT return" {
		t.Errorf("Expected title 'File VAT return', got '%s'", result.Title)
	}
	if result.TaskType != models.DefaultTaskType {
		t.Errorf("Expected default task type, got '%s'", result.TaskType)
	}
	if result.Currency != models.DefaultCurrency {
		t.Errorf("Expected default currency, got '%s'", result.Currency)
	}

	// New tasks always start in the rank-1 status
	newID := seededStatusID(t, repo, models.RankNew)
	if result.StatusID != newID {
		t.Errorf("Expected status %d (New), got %d", newID, result.StatusID)
	}
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: ""})
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
}

func TestCreateTask_InvalidBilling(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	cases := []struct {
		name string
		req  CreateTaskRequest
		want error
	}{
		{"negative rate", CreateTaskRequest{Title: "t", ServiceRate: -1}, ErrNegativeRate},
		{"negative discount", CreateTaskRequest{Title: "t", DiscountAmount: -5}, ErrNegativeDiscount},
		{"tax over 100", CreateTaskRequest{Title: "t", TaxPercent: 101}, ErrInvalidTaxPercent},
		{"negative tax", CreateTaskRequest{Title: "t", TaxPercent: -1}, ErrInvalidTaxPercent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTask(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateTask_DerivesComplianceEnd(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	start := date(2024, time.January, 15)
	result, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:               "Monthly bookkeeping",
		ComplianceFrequency: "Monthly",
		ComplianceStart:     &start,
		IsRecurring:         true,
		ServiceRate:         500,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.ComplianceEnd == nil {
		t.Fatal("Expected compliance end date to be derived")
	}

	// One month out, snapped to the last day of February 2024 (leap year)
	end := *result.ComplianceEnd
	if end.Year() != 2024 || end.Month() != time.February || end.Day() != 29 {
		t.Errorf("Expected end date 2024-02-29, got %v", end)
	}
	if result.ComplianceDuration != "Monthly" {
		t.Errorf("Expected duration 'Monthly', got '%s'", result.ComplianceDuration)
	}
}

func TestCreateTask_UnknownFrequency(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	start := date(2024, time.January, 15)
	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:               "Broken",
		ComplianceFrequency: "Fortnightly",
		ComplianceStart:     &start,
	})
	if err == nil {
		t.Fatal("Expected error for unknown frequency")
	}
}

func TestCreateTask_InvalidYearText(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:               "Bad years",
		ComplianceFrequency: "Annual",
		ComplianceYears:     "24",
	})
	if err == nil {
		t.Fatal("Expected error for malformed year text")
	}

	var fieldErr compliance.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Expected a field error, got %T", err)
	}
	if fieldErr.Field != "complianceYears" {
		t.Errorf("Expected field 'complianceYears', got '%s'", fieldErr.Field)
	}
}

// ============================================================================
// TEST CASES - UPDATE
// ============================================================================

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Original")

	newTitle := "Renamed"
	newRate := 750.0
	updated, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{
		TaskID:      taskID,
		Title:       &newTitle,
		ServiceRate: &newRate,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Title != "Renamed" {
		t.Errorf("Expected title 'Renamed', got '%s'", updated.Title)
	}
	if updated.ServiceRate != 750.0 {
		t.Errorf("Expected service rate 750, got %v", updated.ServiceRate)
	}
}

func TestUpdateTask_RederivesCompliance(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	start := date(2024, time.March, 15)
	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:               "Annual accounts",
		ComplianceFrequency: "Annual",
		ComplianceStart:     &start,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Switching to a month-based frequency must recompute the end date
	freq := "Quarterly"
	updated, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{
		TaskID:              created.ID,
		ComplianceFrequency: &freq,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ComplianceEnd == nil {
		t.Fatal("Expected re-derived end date")
	}
	end := *updated.ComplianceEnd
	if end.Year() != 2024 || end.Month() != time.June || end.Day() != 30 {
		t.Errorf("Expected end date 2024-06-30, got %v", end)
	}
	if updated.ComplianceDuration != "Quarterly" {
		t.Errorf("Expected duration 'Quarterly', got '%s'", updated.ComplianceDuration)
	}
}

func TestUpdateTask_ClearingFrequencyClearsDerived(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	start := date(2024, time.March, 15)
	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:               "One off",
		ComplianceFrequency: "Monthly",
		ComplianceStart:     &start,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	empty := ""
	updated, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{
		TaskID:              created.ID,
		ComplianceFrequency: &empty,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ComplianceEnd != nil {
		t.Errorf("Expected cleared end date, got %v", *updated.ComplianceEnd)
	}
	if updated.ComplianceDuration != "" {
		t.Errorf("Expected cleared duration, got '%s'", updated.ComplianceDuration)
	}
}

func TestUpdateTask_InvalidID(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	_, err := svc.UpdateTask(context.Background(), UpdateTaskRequest{TaskID: 0})
	if !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("Expected ErrInvalidTaskID, got %v", err)
	}
}

// ============================================================================
// TEST CASES - DELETE
// ============================================================================

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Doomed")

	if err := svc.DeleteTask(context.Background(), taskID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := svc.GetTask(context.Background(), taskID); err == nil {
		t.Error("Expected task to be gone after delete")
	}
}

// ============================================================================
// TEST CASES - TRANSITIONS
// ============================================================================

func TestTransition_NewToInProgress(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Movable")
	inProgressID := seededStatusID(t, repo, models.Rank(21))

	moved, err := svc.Transition(context.Background(), taskID, inProgressID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if moved.StatusID != inProgressID {
		t.Errorf("Expected status %d, got %d", inProgressID, moved.StatusID)
	}

	// Verify the change was persisted
	reloaded, err := svc.GetTask(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.StatusID != inProgressID {
		t.Errorf("Expected persisted status %d, got %d", inProgressID, reloaded.StatusID)
	}
}

func TestTransition_SameStatusIsNoOp(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Idle")
	newID := seededStatusID(t, repo, models.RankNew)

	moved, err := svc.Transition(context.Background(), taskID, newID)
	if err != nil {
		t.Fatalf("Expected no-op success, got %v", err)
	}
	if moved.StatusID != newID {
		t.Errorf("Expected status unchanged at %d, got %d", newID, moved.StatusID)
	}
}

func TestTransition_SkippingStepRejected(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Eager")
	firstStepID := seededStatusID(t, repo, models.Rank(21))
	secondStepID := seededStatusID(t, repo, models.Rank(22))

	if _, err := svc.Transition(context.Background(), taskID, firstStepID); err != nil {
		t.Fatalf("Setup transition failed: %v", err)
	}

	// Moving forward one step at a time is legal
	if _, err := svc.Transition(context.Background(), taskID, secondStepID); err != nil {
		t.Fatalf("Forward step failed: %v", err)
	}

	// From 2.2 only Completed is reachable, moving back to 2.1 must fail
	_, err := svc.Transition(context.Background(), taskID, firstStepID)
	if !errors.Is(err, models.ErrTransitionNotAllowed) {
		t.Errorf("Expected ErrTransitionNotAllowed moving backwards, got %v", err)
	}
}

func TestTransition_CompletedIsTerminal(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Done and dusted")
	completedID := seededStatusID(t, repo, models.RankCompleted)
	inProgressID := seededStatusID(t, repo, models.Rank(21))

	if _, err := svc.Transition(context.Background(), taskID, completedID); err != nil {
		t.Fatalf("Completing failed: %v", err)
	}

	_, err := svc.Transition(context.Background(), taskID, inProgressID)
	if !errors.Is(err, models.ErrTerminalStatus) {
		t.Errorf("Expected ErrTerminalStatus, got %v", err)
	}
}

func TestTransition_UnknownTarget(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Lost")

	_, err := svc.Transition(context.Background(), taskID, 9999)
	if !errors.Is(err, ErrStatusNotFound) {
		t.Errorf("Expected ErrStatusNotFound, got %v", err)
	}
}

func TestTransition_FailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Stable")
	before, err := svc.GetTask(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if _, err := svc.Transition(context.Background(), taskID, 9999); err == nil {
		t.Fatal("Expected rejected transition")
	}

	after, err := svc.GetTask(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if after.StatusID != before.StatusID {
		t.Errorf("Status changed on failure: %d -> %d", before.StatusID, after.StatusID)
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Finish me")
	completedID := seededStatusID(t, repo, models.RankCompleted)

	moved, err := svc.Complete(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if moved.StatusID != completedID {
		t.Errorf("Expected status %d (Completed), got %d", completedID, moved.StatusID)
	}
}

func TestAvailableTransitions_FromNew(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	taskID := testutil.CreateTestTask(t, repo, "Fresh")

	reachable, err := svc.AvailableTransitions(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Seeded set: In Progress 2.1, Review 2.2, Completed 3
	if len(reachable) != 3 {
		t.Fatalf("Expected 3 reachable statuses, got %d", len(reachable))
	}
}

func TestAvailableTransitions_IncludesCompletionFallback(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)

	// Push the task deep into the chain: from 2.2 the computed set is
	// only Completed, which is already reachable, so no fallback is added
	// and the total stays 1.
	taskID := testutil.CreateTestTask(t, repo, "Deep")
	firstStepID := seededStatusID(t, repo, models.Rank(21))
	secondStepID := seededStatusID(t, repo, models.Rank(22))

	if _, err := svc.Transition(context.Background(), taskID, firstStepID); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, err := svc.Transition(context.Background(), taskID, secondStepID); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	reachable, err := svc.AvailableTransitions(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(reachable) != 1 {
		t.Fatalf("Expected 1 reachable status, got %d", len(reachable))
	}
	if !reachable[0].Rank.IsCompleted() {
		t.Errorf("Expected Completed, got rank %v", reachable[0].Rank)
	}
}
