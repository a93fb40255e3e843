package task

import (
	"strings"
	"testing"

	"github.com/digirix/praxis/internal/testutil/clitest"
)

func TestListTasks_Integration(t *testing.T) {
	testApp := clitest.Setup(t)

	t.Run("empty list", func(t *testing.T) {
		output, err := clitest.Execute(t, testApp, ListCmd(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "No tasks found") {
			t.Errorf("expected empty message, got: %s", output)
		}
	})

	t.Run("lists tasks with their status", func(t *testing.T) {
		createTask(t, testApp, "Corporation tax return")
		createTask(t, testApp, "Management accounts")

		output, err := clitest.Execute(t, testApp, ListCmd(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Corporation tax return") {
			t.Errorf("expected task title in output, got: %s", output)
		}
		if !strings.Contains(output, "New") {
			t.Errorf("expected status name in output, got: %s", output)
		}
	})

	t.Run("json rows carry the status rank", func(t *testing.T) {
		output, err := clitest.Execute(t, testApp, ListCmd(), []string{"--json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result := clitest.ParseJSON(t, output)
		tasks, ok := result["tasks"].([]interface{})
		if !ok || len(tasks) == 0 {
			t.Fatalf("expected tasks array, got: %v", result["tasks"])
		}
		row := tasks[0].(map[string]interface{})
		if row["status_rank"] != "1" {
			t.Errorf("expected status_rank \"1\", got: %v", row["status_rank"])
		}
	})
}
