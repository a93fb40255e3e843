// Package clitest provides helpers for exercising cobra commands against
// a temporary database. It lives apart from testutil so service tests can
// import testutil without pulling in the CLI packages.
package clitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/digirix/praxis/internal/app"
	"github.com/digirix/praxis/internal/cli"
	"github.com/digirix/praxis/internal/testutil"
)

// Setup creates an app container backed by a temporary database.
// Event publishing is nil; it is tested elsewhere.
func Setup(t *testing.T) *app.App {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	return app.New(repo, nil)
}

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	return <-outC
}

// Execute runs a cobra command against the given app and captures stdout.
func Execute(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - Setup must be called first")
	}

	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := cli.WithApp(context.Background(), testApp)

	var executeErr error
	output := CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\noutput: %s", err, output)
	}
	return result
}
