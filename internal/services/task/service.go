package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/digirix/praxis/internal/compliance"
	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/events"
	"github.com/digirix/praxis/internal/models"
	"github.com/digirix/praxis/internal/workflow"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID int) (*models.Task, error)
	ListTasks(ctx context.Context) ([]*models.TaskSummary, error)
	AvailableTransitions(ctx context.Context, taskID int) ([]*models.TaskStatus, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int) error

	// Status movements
	Transition(ctx context.Context, taskID, targetStatusID int) (*models.Task, error)
	Complete(ctx context.Context, taskID int) (*models.Task, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title       string
	Description string
	IsAdmin     bool
	TaskType    string // Optional: empty means use default
	DueDate     *time.Time

	// Compliance inputs, revenue tasks only. End date and duration are
	// derived, never accepted from the caller.
	ComplianceFrequency string
	ComplianceYears     string
	ComplianceStart     *time.Time
	IsRecurring         bool

	// Billing inputs, revenue tasks only.
	ServiceRate    float64
	Currency       string // Optional: empty means use default
	DiscountAmount float64
	TaxPercent     float64
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	TaskID      int
	Title       *string
	Description *string
	TaskType    *string
	DueDate     **time.Time

	ComplianceFrequency *string
	ComplianceYears     *string
	ComplianceStart     **time.Time
	IsRecurring         *bool

	ServiceRate    *float64
	Currency       *string
	DiscountAmount *float64
	TaxPercent     *float64
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher

	// inFlight guards against concurrent transitions of the same task
	// within this process. Keyed by task ID.
	inFlight sync.Map
}

// NewService creates a new task service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// CreateTask handles task creation with validation and business rules.
// New tasks always start in the configured "New" status, and compliance
// end date and duration are derived from frequency and start date.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := validateCreateTask(req); err != nil {
		return nil, err
	}

	statuses, err := s.repo.GetAllStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status configuration: %w", err)
	}
	initial := workflow.InitialStatus(statuses)
	if initial == nil {
		return nil, ErrNoInitialStatus
	}

	t := &models.Task{
		Title:               req.Title,
		Description:         req.Description,
		IsAdmin:             req.IsAdmin,
		TaskType:            req.TaskType,
		StatusID:            initial.ID,
		DueDate:             req.DueDate,
		ComplianceFrequency: req.ComplianceFrequency,
		ComplianceYears:     req.ComplianceYears,
		ComplianceStart:     req.ComplianceStart,
		IsRecurring:         req.IsRecurring,
		ServiceRate:         req.ServiceRate,
		Currency:            req.Currency,
		DiscountAmount:      req.DiscountAmount,
		TaxPercent:          req.TaxPercent,
	}
	if t.TaskType == "" {
		t.TaskType = models.DefaultTaskType
	}
	if t.Currency == "" {
		t.Currency = models.DefaultCurrency
	}

	if err := deriveCompliance(t); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTask(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishTaskEvent(created.ID)

	return created, nil
}

// UpdateTask handles task updates with validation. Compliance end date and
// duration are re-derived whenever frequency or start date change.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.Title != nil && *req.Title == "" {
		return nil, ErrEmptyTitle
	}
	if req.Title != nil && len(*req.Title) > 255 {
		return nil, ErrTitleTooLong
	}

	t, err := s.repo.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.TaskType != nil {
		t.TaskType = *req.TaskType
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.ComplianceFrequency != nil {
		t.ComplianceFrequency = *req.ComplianceFrequency
	}
	if req.ComplianceYears != nil {
		t.ComplianceYears = *req.ComplianceYears
	}
	if req.ComplianceStart != nil {
		t.ComplianceStart = *req.ComplianceStart
	}
	if req.IsRecurring != nil {
		t.IsRecurring = *req.IsRecurring
	}
	if req.ServiceRate != nil {
		t.ServiceRate = *req.ServiceRate
	}
	if req.Currency != nil {
		t.Currency = *req.Currency
	}
	if req.DiscountAmount != nil {
		t.DiscountAmount = *req.DiscountAmount
	}
	if req.TaxPercent != nil {
		t.TaxPercent = *req.TaxPercent
	}

	if err := validateBilling(t.ServiceRate, t.DiscountAmount, t.TaxPercent); err != nil {
		return nil, err
	}

	if err := deriveCompliance(t); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishTaskEvent(t.ID)

	return t, nil
}

// DeleteTask handles task deletion
func (s *service) DeleteTask(ctx context.Context, taskID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}

	if err := s.repo.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishTaskEvent(taskID)

	return nil
}

// GetTask retrieves a single task
func (s *service) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	return s.repo.GetTaskByID(ctx, taskID)
}

// ListTasks retrieves task summaries ordered by status rank then due date
func (s *service) ListTasks(ctx context.Context) ([]*models.TaskSummary, error) {
	return s.repo.GetTaskSummaries(ctx)
}

// AvailableTransitions returns the statuses the task may legally move to,
// including the completion fallback when the reachable set lacks it.
func (s *service) AvailableTransitions(ctx context.Context, taskID int) ([]*models.TaskStatus, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	t, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	statuses, err := s.repo.GetAllStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status configuration: %w", err)
	}

	current := statusByID(statuses, t.StatusID)
	reachable := workflow.AvailableTransitions(current, statuses)

	fallback, err := workflow.CompletionFallback(current, reachable, statuses)
	if err != nil {
		return nil, err
	}
	if fallback != nil {
		reachable = append(reachable, fallback)
	}

	return reachable, nil
}

// Transition moves a task to the target status. A transition to the task's
// current status is a no-op. On any failure the task is left unchanged.
func (s *service) Transition(ctx context.Context, taskID, targetStatusID int) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if targetStatusID <= 0 {
		return nil, ErrInvalidStatusID
	}

	// At most one transition in flight per task within this process.
	if _, loaded := s.inFlight.LoadOrStore(taskID, struct{}{}); loaded {
		return nil, ErrTransitionInFlight
	}
	defer s.inFlight.Delete(taskID)

	t, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	// Same-status transition succeeds without touching anything.
	if t.StatusID == targetStatusID {
		return t, nil
	}

	statuses, err := s.repo.GetAllStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status configuration: %w", err)
	}

	current := statusByID(statuses, t.StatusID)
	target := statusByID(statuses, targetStatusID)
	if target == nil {
		return nil, ErrStatusNotFound
	}
	if current != nil && current.Rank.IsCompleted() {
		return nil, models.ErrTerminalStatus
	}

	if !workflow.CanTransition(current, target, statuses) {
		return nil, models.ErrTransitionNotAllowed
	}

	if err := s.repo.UpdateTaskStatus(ctx, taskID, targetStatusID); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	t.StatusID = targetStatusID
	s.publishTaskEvent(taskID)

	return t, nil
}

// Complete transitions a task straight to the configured Completed status
func (s *service) Complete(ctx context.Context, taskID int) (*models.Task, error) {
	statuses, err := s.repo.GetAllStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status configuration: %w", err)
	}

	done := workflow.CompletedStatus(statuses)
	if done == nil {
		return nil, models.ErrCompletedStatusNotFound
	}

	return s.Transition(ctx, taskID, done.ID)
}

// validateCreateTask checks the create request against business rules
func validateCreateTask(req CreateTaskRequest) error {
	if req.Title == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > 255 {
		return ErrTitleTooLong
	}
	if err := validateBilling(req.ServiceRate, req.DiscountAmount, req.TaxPercent); err != nil {
		return err
	}
	return nil
}

func validateBilling(serviceRate, discountAmount, taxPercent float64) error {
	if serviceRate < 0 {
		return ErrNegativeRate
	}
	if discountAmount < 0 {
		return ErrNegativeDiscount
	}
	if taxPercent < 0 || taxPercent > 100 {
		return ErrInvalidTaxPercent
	}
	return nil
}

// deriveCompliance fills the derived compliance fields from frequency and
// start date, clearing them when either input is absent. Year text is
// validated whenever a frequency is set.
func deriveCompliance(t *models.Task) error {
	if t.ComplianceFrequency == "" {
		t.ComplianceEnd = nil
		t.ComplianceDuration = ""
		return nil
	}

	freq, err := compliance.ParseFrequency(t.ComplianceFrequency)
	if err != nil {
		return err
	}

	if t.ComplianceYears != "" {
		if fieldErrs := compliance.ValidateYears(t.ComplianceYears); len(fieldErrs) > 0 {
			return fieldErrs[0]
		}
	}

	if t.ComplianceStart == nil {
		t.ComplianceEnd = nil
		t.ComplianceDuration = compliance.Duration(freq)
		return nil
	}

	end, ok := compliance.EndDate(freq, *t.ComplianceStart)
	if ok {
		t.ComplianceEnd = &end
	} else {
		t.ComplianceEnd = nil
	}
	t.ComplianceDuration = compliance.Duration(freq)
	return nil
}

// statusByID finds a status in the configured set by ID
func statusByID(all []*models.TaskStatus, id int) *models.TaskStatus {
	for _, s := range all {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// publishTaskEvent notifies connected clients that a task changed so they
// can invalidate their cached copy. Fire-and-forget.
func (s *service) publishTaskEvent(taskID int) {
	if s.eventClient == nil {
		return
	}

	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventEntityChanged,
		Kind:      events.KindTask,
		EntityID:  taskID,
		Timestamp: time.Now(),
	}, 3)
}
