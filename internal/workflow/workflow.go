// Package workflow implements the task status transition rule.
//
// Statuses are partitioned by rank into three bands: New (1), an ordered
// chain of InProgress sub-stages (2.1, 2.2, ...) and the terminal
// Completed (3). From New everything in the in-progress band plus
// Completed is reachable; from an in-progress sub-stage only the exact
// next sub-stage plus Completed; Completed is terminal.
package workflow

import (
	"sort"

	"github.com/digirix/praxis/internal/models"
)

// AvailableTransitions returns the set of statuses a task may legally move
// to from current, given the full configured status set. It is pure and
// total: terminal or malformed inputs yield an empty slice, never an error.
// Results are ordered by rank.
func AvailableTransitions(current *models.TaskStatus, all []*models.TaskStatus) []*models.TaskStatus {
	if current == nil || !current.Rank.Valid() || current.Rank.IsCompleted() {
		return nil
	}

	var reachable []*models.TaskStatus

	switch {
	case current.Rank.IsNew():
		for _, s := range all {
			if s.Rank.IsInProgress() || s.Rank.IsCompleted() {
				reachable = append(reachable, s)
			}
		}

	case current.Rank.IsInProgress():
		next, hasNext := current.Rank.NextStep()
		for _, s := range all {
			if hasNext && s.Rank == next {
				reachable = append(reachable, s)
			} else if s.Rank.IsCompleted() {
				reachable = append(reachable, s)
			}
		}
	}

	sort.Slice(reachable, func(i, j int) bool {
		return reachable[i].Rank < reachable[j].Rank
	})
	return reachable
}

// CompletionFallback synthesizes the "mark as completed" escape hatch: the
// Completed status located by direct rank lookup, offered whenever the
// current status is not itself Completed and the reachable set does not
// already contain it. Returns models.ErrCompletedStatusNotFound when the
// fallback is required but no Completed status is configured.
func CompletionFallback(current *models.TaskStatus, reachable, all []*models.TaskStatus) (*models.TaskStatus, error) {
	if current == nil || current.Rank.IsCompleted() {
		return nil, nil
	}
	for _, s := range reachable {
		if s.Rank.IsCompleted() {
			return nil, nil
		}
	}
	if done := CompletedStatus(all); done != nil {
		return done, nil
	}
	return nil, models.ErrCompletedStatusNotFound
}

// CompletedStatus returns the configured status with the terminal rank,
// or nil when none exists.
func CompletedStatus(all []*models.TaskStatus) *models.TaskStatus {
	for _, s := range all {
		if s.Rank.IsCompleted() {
			return s
		}
	}
	return nil
}

// InitialStatus returns the configured rank-1 "New" status, or nil when
// none exists. New tasks are always created in this status.
func InitialStatus(all []*models.TaskStatus) *models.TaskStatus {
	for _, s := range all {
		if s.Rank.IsNew() {
			return s
		}
	}
	return nil
}

// CanTransition reports whether moving from current to target is legal,
// considering both the computed reachable set and the completion fallback.
// A transition to the current status itself is treated as a legal no-op.
func CanTransition(current, target *models.TaskStatus, all []*models.TaskStatus) bool {
	if current == nil || target == nil {
		return false
	}
	if target.ID == current.ID {
		return true
	}

	reachable := AvailableTransitions(current, all)
	for _, s := range reachable {
		if s.ID == target.ID {
			return true
		}
	}

	fallback, err := CompletionFallback(current, reachable, all)
	return err == nil && fallback != nil && fallback.ID == target.ID
}
