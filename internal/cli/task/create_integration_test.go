package task

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/digirix/praxis/internal/testutil/clitest"
)

func TestCreateTask_Integration(t *testing.T) {
	testApp := clitest.Setup(t)

	t.Run("default output", func(t *testing.T) {
		output, err := clitest.Execute(t, testApp, CreateCmd(), []string{
			"--title=Annual accounts FY24",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Created task") {
			t.Errorf("expected creation message, got: %s", output)
		}
	})

	t.Run("quiet mode outputs only the ID", func(t *testing.T) {
		output, err := clitest.Execute(t, testApp, CreateCmd(), []string{
			"--title=VAT return Q2",
			"--quiet",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var id int
		if _, scanErr := fmt.Sscanf(output, "%d", &id); scanErr != nil || id <= 0 {
			t.Errorf("expected a bare task ID, got: %q", output)
		}
	})

	t.Run("json mode reports success and data", func(t *testing.T) {
		output, err := clitest.Execute(t, testApp, CreateCmd(), []string{
			"--title=Payroll run",
			"--admin",
			"--json",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result := clitest.ParseJSON(t, output)
		if result["success"] != true {
			t.Errorf("expected success=true, got: %v", result["success"])
		}
		data, ok := result["data"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected data object, got: %v", result["data"])
		}
		if data["title"] != "Payroll run" {
			t.Errorf("expected title in data, got: %v", data["title"])
		}
		if data["is_admin"] != true {
			t.Errorf("expected is_admin=true, got: %v", data["is_admin"])
		}
	})

	t.Run("compliance schedule is derived", func(t *testing.T) {
		output, err := clitest.Execute(t, testApp, CreateCmd(), []string{
			"--title=Monthly bookkeeping",
			"--frequency=Monthly",
			"--compliance-start=2024-01-15",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Compliance period ends Feb 29, 2024") {
			t.Errorf("expected derived period end in output, got: %s", output)
		}
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := clitest.Execute(t, testApp, CreateCmd(), []string{
			"--title=Bad billing",
			"--rate=-5",
		})
		if err == nil {
			t.Fatal("expected error for negative rate")
		}
	})

	t.Run("unknown frequency is rejected", func(t *testing.T) {
		_, err := clitest.Execute(t, testApp, CreateCmd(), []string{
			"--title=Bad schedule",
			"--frequency=Fortnightly",
			"--compliance-start=2024-01-01",
		})
		if err == nil {
			t.Fatal("expected error for unknown frequency")
		}
	})

	t.Run("created task starts in the initial status", func(t *testing.T) {
		created, err := testApp.TaskService.CreateTask(context.Background(), createReq("Check initial status"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		status, err := testApp.StatusService.GetStatus(context.Background(), created.StatusID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !status.Rank.IsNew() {
			t.Errorf("expected task to start in New, got rank %s", status.Rank.String())
		}
	})
}
