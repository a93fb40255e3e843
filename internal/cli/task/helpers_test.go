package task

import (
	"context"
	"testing"

	"github.com/digirix/praxis/internal/app"
	"github.com/digirix/praxis/internal/models"
	taskservice "github.com/digirix/praxis/internal/services/task"
)

func createReq(title string) taskservice.CreateTaskRequest {
	return taskservice.CreateTaskRequest{Title: title}
}

// createTask makes a task through the service layer and returns its ID.
func createTask(t *testing.T, testApp *app.App, title string) int {
	t.Helper()
	created, err := testApp.TaskService.CreateTask(context.Background(), createReq(title))
	if err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return created.ID
}

// statusIDByRank looks up a seeded status by its rank.
func statusIDByRank(t *testing.T, testApp *app.App, rank models.Rank) int {
	t.Helper()
	statuses, err := testApp.StatusService.ListStatuses(context.Background())
	if err != nil {
		t.Fatalf("failed to list statuses: %v", err)
	}
	for _, s := range statuses {
		if s.Rank == rank {
			return s.ID
		}
	}
	t.Fatalf("no status with rank %s", rank.String())
	return 0
}
