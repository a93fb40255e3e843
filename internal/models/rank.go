package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank orders task statuses and drives transition eligibility.
// It is encoded as stage*10 + step to avoid floating-point comparisons:
//
//	10    -> New        (wire form "1")
//	21-29 -> InProgress (wire forms "2.1" .. "2.9")
//	30    -> Completed  (wire form "3")
//
// The wire form keeps the decimal notation used by the status configuration
// API so existing clients keep working.
type Rank int

const (
	RankNew       Rank = 10
	RankCompleted Rank = 30

	stageNew        = 1
	stageInProgress = 2
	stageCompleted  = 3
)

// ParseRank parses the decimal wire form ("1", "2.1", "3") into a Rank.
func ParseRank(s string) (Rank, error) {
	stagePart, stepPart, hasStep := strings.Cut(strings.TrimSpace(s), ".")

	stage, err := strconv.Atoi(stagePart)
	if err != nil {
		return 0, fmt.Errorf("invalid rank %q: %w", s, err)
	}

	step := 0
	if hasStep {
		step, err = strconv.Atoi(stepPart)
		if err != nil {
			return 0, fmt.Errorf("invalid rank %q: %w", s, err)
		}
		// A step only exists in the in-progress band, and must stay a
		// single digit so it cannot collide with another band's encoding
		// ("2.10" is not Completed).
		if stage != stageInProgress || step < 1 || step > 9 {
			return 0, fmt.Errorf("invalid rank %q: %w", s, ErrInvalidRank)
		}
	}

	r := Rank(stage*10 + step)
	if !r.Valid() {
		return 0, fmt.Errorf("invalid rank %q: %w", s, ErrInvalidRank)
	}
	return r, nil
}

// Stage returns the integer band of the rank (1, 2 or 3).
func (r Rank) Stage() int { return int(r) / 10 }

// Step returns the in-progress sub-stage (0 for New and Completed).
func (r Rank) Step() int { return int(r) % 10 }

// IsNew reports whether the rank is the initial "New" stage.
func (r Rank) IsNew() bool { return r == RankNew }

// IsInProgress reports whether the rank belongs to the in-progress band.
func (r Rank) IsInProgress() bool { return r.Stage() == stageInProgress && r.Step() > 0 }

// IsCompleted reports whether the rank is the terminal "Completed" stage.
func (r Rank) IsCompleted() bool { return r == RankCompleted }

// Valid reports whether the rank falls in one of the three bands.
func (r Rank) Valid() bool {
	return r.IsNew() || r.IsInProgress() || r.IsCompleted()
}

// NextStep returns the rank of the next in-progress sub-stage.
// Only meaningful when IsInProgress is true; 2.9 has no next step.
func (r Rank) NextStep() (Rank, bool) {
	if !r.IsInProgress() || r.Step() >= 9 {
		return 0, false
	}
	return r + 1, true
}

// String renders the decimal wire form.
func (r Rank) String() string {
	if r.Step() == 0 {
		return strconv.Itoa(r.Stage())
	}
	return fmt.Sprintf("%d.%d", r.Stage(), r.Step())
}
