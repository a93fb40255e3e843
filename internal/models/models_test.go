package models

import (
	"errors"
	"testing"
)

// ============================================================================
// Rank Tests
// ============================================================================

func TestParseRank_WireForms(t *testing.T) {
	tests := []struct {
		input    string
		expected Rank
	}{
		{"1", RankNew},
		{"2.1", Rank(21)},
		{"2.2", Rank(22)},
		{"2.9", Rank(29)},
		{"3", RankCompleted},
		{" 2.1 ", Rank(21)},
	}

	for _, tt := range tests {
		r, err := ParseRank(tt.input)
		if err != nil {
			t.Errorf("ParseRank(%q) returned error: %v", tt.input, err)
			continue
		}
		if r != tt.expected {
			t.Errorf("ParseRank(%q) = %d, expected %d", tt.input, r, tt.expected)
		}
	}
}

func TestParseRank_Invalid(t *testing.T) {
	invalid := []string{
		"", "0", "4", "2", "2.0", "1.5", "3.1", "abc", "2.x",
		// Multi-digit steps must not collide with another band's encoding
		"2.10", "1.20", "0.30", "2.-1",
	}

	for _, input := range invalid {
		if _, err := ParseRank(input); err == nil {
			t.Errorf("ParseRank(%q) should have returned an error", input)
		}
	}
}

func TestRank_RoundTrip(t *testing.T) {
	for _, wire := range []string{"1", "2.1", "2.5", "3"} {
		r, err := ParseRank(wire)
		if err != nil {
			t.Fatalf("ParseRank(%q) failed: %v", wire, err)
		}
		if r.String() != wire {
			t.Errorf("Rank(%q).String() = %q", wire, r.String())
		}
	}
}

func TestRank_Bands(t *testing.T) {
	if !RankNew.IsNew() || RankNew.IsInProgress() || RankNew.IsCompleted() {
		t.Error("RankNew should only be in the New band")
	}
	if !Rank(21).IsInProgress() || Rank(21).IsNew() || Rank(21).IsCompleted() {
		t.Error("rank 2.1 should only be in the InProgress band")
	}
	if !RankCompleted.IsCompleted() || RankCompleted.IsNew() || RankCompleted.IsInProgress() {
		t.Error("RankCompleted should only be in the Completed band")
	}
}

func TestRank_NextStep(t *testing.T) {
	next, ok := Rank(21).NextStep()
	if !ok || next != Rank(22) {
		t.Errorf("NextStep(2.1) = %d, %v; expected 2.2", next, ok)
	}

	// Last sub-stage has no next step
	if _, ok := Rank(29).NextStep(); ok {
		t.Error("NextStep(2.9) should not exist")
	}

	// New and Completed are not stepped
	if _, ok := RankNew.NextStep(); ok {
		t.Error("NextStep(1) should not exist")
	}
	if _, ok := RankCompleted.NextStep(); ok {
		t.Error("NextStep(3) should not exist")
	}
}

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Unique(t *testing.T) {
	if errors.Is(ErrCompletedStatusNotFound, ErrTransitionNotAllowed) {
		t.Error("ErrCompletedStatusNotFound should not equal ErrTransitionNotAllowed")
	}
	if errors.Is(ErrTerminalStatus, ErrTransitionNotAllowed) {
		t.Error("ErrTerminalStatus should not equal ErrTransitionNotAllowed")
	}
}
