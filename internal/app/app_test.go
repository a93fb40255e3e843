package app

import (
	"testing"

	"github.com/digirix/praxis/internal/testutil"
)

func TestNew(t *testing.T) {
	repo := testutil.SetupTestRepo(t)

	a := New(repo, nil)
	if a == nil {
		t.Fatal("expected app to be created, got nil")
	}

	if a.TaskService == nil {
		t.Error("expected TaskService to be initialized")
	}
	if a.StatusService == nil {
		t.Error("expected StatusService to be initialized")
	}
	if a.InvoiceService == nil {
		t.Error("expected InvoiceService to be initialized")
	}
	if a.Tracker == nil {
		t.Error("expected Tracker to be initialized")
	}
	if a.Repo() == nil {
		t.Error("expected Repo to return the datastore")
	}
}

func TestClose(t *testing.T) {
	repo := testutil.SetupTestRepo(t)

	a := New(repo, nil)
	if err := a.Close(); err != nil {
		t.Errorf("expected Close to succeed, got error: %v", err)
	}
}
