package status

import (
	"context"
	"fmt"
	"time"

	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/events"
	"github.com/digirix/praxis/internal/models"
	"github.com/digirix/praxis/internal/workflow"
)

// Service defines all status-configuration operations
type Service interface {
	// Read operations
	GetStatus(ctx context.Context, id int) (*models.TaskStatus, error)
	ListStatuses(ctx context.Context) ([]*models.TaskStatus, error)

	// Write operations. Every mutation is validated against the full
	// resulting status set before it is applied.
	CreateStatus(ctx context.Context, name, rank string) (*models.TaskStatus, error)
	UpdateStatus(ctx context.Context, id int, name, rank string) (*models.TaskStatus, error)
	DeleteStatus(ctx context.Context, id int) error
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new status configuration service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetStatus retrieves a single configured status
func (s *service) GetStatus(ctx context.Context, id int) (*models.TaskStatus, error) {
	if id <= 0 {
		return nil, ErrInvalidStatusID
	}
	return s.repo.GetStatusByID(ctx, id)
}

// ListStatuses retrieves the full configured status set ordered by rank
func (s *service) ListStatuses(ctx context.Context) ([]*models.TaskStatus, error) {
	return s.repo.GetAllStatuses(ctx)
}

// CreateStatus adds a status after checking the resulting set still
// satisfies the configuration invariants
func (s *service) CreateStatus(ctx context.Context, name, rank string) (*models.TaskStatus, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	r, err := models.ParseRank(rank)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetAllStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status configuration: %w", err)
	}

	proposed := append(append([]*models.TaskStatus{}, existing...), &models.TaskStatus{Name: name, Rank: r})
	if err := workflow.ValidateStatusSet(proposed); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateStatus(ctx, name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	s.publishStatusEvent(created.ID)

	return created, nil
}

// UpdateStatus renames or re-ranks a status, validating the resulting set
func (s *service) UpdateStatus(ctx context.Context, id int, name, rank string) (*models.TaskStatus, error) {
	if id <= 0 {
		return nil, ErrInvalidStatusID
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	r, err := models.ParseRank(rank)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetAllStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status configuration: %w", err)
	}

	found := false
	proposed := make([]*models.TaskStatus, 0, len(existing))
	for _, st := range existing {
		if st.ID == id {
			found = true
			proposed = append(proposed, &models.TaskStatus{ID: id, Name: name, Rank: r})
		} else {
			proposed = append(proposed, st)
		}
	}
	if !found {
		return nil, database.ErrNotFound
	}

	if err := workflow.ValidateStatusSet(proposed); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, name, r); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.publishStatusEvent(id)

	return &models.TaskStatus{ID: id, Name: name, Rank: r}, nil
}

// DeleteStatus removes a status, validating the remaining set. Deleting a
// status still referenced by tasks fails at the database layer.
func (s *service) DeleteStatus(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidStatusID
	}

	existing, err := s.repo.GetAllStatuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load status configuration: %w", err)
	}

	found := false
	remaining := make([]*models.TaskStatus, 0, len(existing))
	for _, st := range existing {
		if st.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, st)
	}
	if !found {
		return database.ErrNotFound
	}

	if err := workflow.ValidateStatusSet(remaining); err != nil {
		return err
	}

	if err := s.repo.DeleteStatus(ctx, id); err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}

	s.publishStatusEvent(id)

	return nil
}

// publishStatusEvent notifies connected clients that the status
// configuration changed
func (s *service) publishStatusEvent(statusID int) {
	if s.eventClient == nil {
		return
	}

	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventEntityChanged,
		Kind:      events.KindStatusConfig,
		EntityID:  statusID,
		Timestamp: time.Now(),
	}, 3)
}
