package timer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	taskservice "github.com/digirix/praxis/internal/services/task"
	"github.com/digirix/praxis/internal/testutil/clitest"
)

func TestTimerCommands_Integration(t *testing.T) {
	testApp := clitest.Setup(t)

	created, err := testApp.TaskService.CreateTask(context.Background(), taskservice.CreateTaskRequest{
		Title: "Tracked engagement",
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	taskID := fmt.Sprintf("%d", created.ID)

	t.Run("start then stop records a time entry", func(t *testing.T) {
		output, err := clitest.Execute(t, testApp, StartCmd(), []string{taskID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Timer started") {
			t.Errorf("expected start confirmation, got: %s", output)
		}

		stopOutput, err := clitest.Execute(t, testApp, StopCmd(), []string{taskID, "--json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result := clitest.ParseJSON(t, stopOutput)
		data := result["data"].(map[string]interface{})
		if int(data["task_id"].(float64)) != created.ID {
			t.Errorf("expected task_id %d, got: %v", created.ID, data["task_id"])
		}
		if data["seconds"].(float64) < 0 {
			t.Errorf("expected non-negative seconds, got: %v", data["seconds"])
		}
	})

	t.Run("double start is rejected", func(t *testing.T) {
		if _, err := clitest.Execute(t, testApp, StartCmd(), []string{taskID, "--quiet"}); err != nil {
			t.Fatalf("first start failed: %v", err)
		}
		defer func() {
			_, _ = clitest.Execute(t, testApp, StopCmd(), []string{taskID, "--quiet"})
		}()

		_, err := clitest.Execute(t, testApp, StartCmd(), []string{taskID})
		if err == nil {
			t.Fatal("expected second start to be rejected")
		}
	})

	t.Run("stop without a running timer is rejected", func(t *testing.T) {
		_, err := clitest.Execute(t, testApp, StopCmd(), []string{taskID})
		if err == nil {
			t.Fatal("expected stop without a timer to be rejected")
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := clitest.Execute(t, testApp, StartCmd(), []string{"99999"})
		if err == nil {
			t.Fatal("expected error for unknown task")
		}
	})
}
