package task

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/digirix/praxis/internal/testutil/clitest"
)

func TestDoneTask_Integration(t *testing.T) {
	testApp := clitest.Setup(t)

	t.Run("marks a task completed", func(t *testing.T) {
		taskID := createTask(t, testApp, "Task to complete")

		output, err := clitest.Execute(t, testApp, DoneCmd(), []string{
			fmt.Sprintf("%d", taskID),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, fmt.Sprintf("Task %d completed", taskID)) {
			t.Errorf("expected completion message, got: %s", output)
		}

		moved, err := testApp.TaskService.GetTask(context.Background(), taskID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		status, err := testApp.StatusService.GetStatus(context.Background(), moved.StatusID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !status.Rank.IsCompleted() {
			t.Errorf("expected task in Completed, got rank %s", status.Rank.String())
		}
	})

	t.Run("quiet mode outputs only the ID", func(t *testing.T) {
		taskID := createTask(t, testApp, "Quiet completion")

		output, err := clitest.Execute(t, testApp, DoneCmd(), []string{
			fmt.Sprintf("%d", taskID),
			"--quiet",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output != fmt.Sprintf("%d\n", taskID) {
			t.Errorf("expected bare ID, got: %q", output)
		}
	})

	t.Run("completing twice is rejected", func(t *testing.T) {
		taskID := createTask(t, testApp, "Already done")

		if _, err := clitest.Execute(t, testApp, DoneCmd(), []string{
			fmt.Sprintf("%d", taskID), "--quiet",
		}); err != nil {
			t.Fatalf("setup completion failed: %v", err)
		}

		_, err := clitest.Execute(t, testApp, DoneCmd(), []string{
			fmt.Sprintf("%d", taskID),
		})
		if err == nil {
			t.Fatal("expected error completing a completed task")
		}
	})
}
