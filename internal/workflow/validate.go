package workflow

import (
	"sort"

	"github.com/digirix/praxis/internal/models"
)

// ValidateStatusSet checks the configuration invariants on a full status
// set: every rank falls in a valid band, ranks are unique, exactly one
// status is Completed, and the in-progress ranks form a strictly
// increasing chain starting at 2.1 with no gaps.
func ValidateStatusSet(all []*models.TaskStatus) error {
	seen := make(map[models.Rank]bool, len(all))
	completed := 0
	var progress []models.Rank

	for _, s := range all {
		if !s.Rank.Valid() {
			return models.ErrInvalidRank
		}
		if seen[s.Rank] {
			return ErrDuplicateRank
		}
		seen[s.Rank] = true

		if s.Rank.IsCompleted() {
			completed++
		}
		if s.Rank.IsInProgress() {
			progress = append(progress, s.Rank)
		}
	}

	if completed == 0 {
		return models.ErrCompletedStatusNotFound
	}
	if completed > 1 {
		return ErrMultipleCompleted
	}

	sort.Slice(progress, func(i, j int) bool { return progress[i] < progress[j] })
	for i, r := range progress {
		if r.Step() != i+1 {
			return ErrBrokenProgressChain
		}
	}

	return nil
}
