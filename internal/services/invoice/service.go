package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/events"
	"github.com/digirix/praxis/internal/finance"
	"github.com/digirix/praxis/internal/models"
)

// Service defines all invoice-related business operations
type Service interface {
	// Read operations
	GetInvoice(ctx context.Context, id int) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)

	// Write operations
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, req UpdateInvoiceRequest) (*models.Invoice, error)
}

// CreateInvoiceRequest encapsulates data for raising an invoice.
// Subtotal, tax amount and total are always computed server-side and
// never accepted from the caller.
type CreateInvoiceRequest struct {
	InvoiceNumber  string // Optional: empty means generate
	TaskID         *int   // Optional: links the invoice to a revenue task
	ServiceRate    float64
	Currency       string // Optional: empty means use the task's, then the default
	DiscountAmount float64
	TaxPercent     float64
	IssuedAt       *time.Time
}

// UpdateInvoiceRequest encapsulates data for updating an invoice
// Fields with pointers are optional - nil means don't update
type UpdateInvoiceRequest struct {
	InvoiceID      int
	ServiceRate    *float64
	Currency       *string
	DiscountAmount *float64
	TaxPercent     *float64
	IssuedAt       **time.Time
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new invoice service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetInvoice retrieves a single invoice
func (s *service) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	if id <= 0 {
		return nil, ErrInvalidInvoiceID
	}
	return s.repo.GetInvoiceByID(ctx, id)
}

// ListInvoices retrieves all invoices, newest first
func (s *service) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.repo.GetAllInvoices(ctx)
}

// CreateInvoice raises an invoice, computing its totals and optionally
// linking it back to the billed task
func (s *service) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*models.Invoice, error) {
	if err := validateBilling(req.ServiceRate, req.DiscountAmount, req.TaxPercent); err != nil {
		return nil, err
	}

	var task *models.Task
	if req.TaskID != nil {
		var err error
		task, err = s.repo.GetTaskByID(ctx, *req.TaskID)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked task: %w", err)
		}
		if task.InvoiceID != nil {
			return nil, ErrTaskAlreadyInvoiced
		}
	}

	currency := req.Currency
	if currency == "" && task != nil {
		currency = task.Currency
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}

	number := req.InvoiceNumber
	if number == "" {
		var err error
		number, err = s.nextInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	issuedAt := req.IssuedAt
	if issuedAt == nil {
		now := time.Now()
		issuedAt = &now
	}

	totals := finance.Compute(req.ServiceRate, req.DiscountAmount, req.TaxPercent)

	inv := &models.Invoice{
		InvoiceNumber:  number,
		TaskID:         req.TaskID,
		ServiceRate:    req.ServiceRate,
		Currency:       currency,
		DiscountAmount: req.DiscountAmount,
		TaxPercent:     req.TaxPercent,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		IssuedAt:       issuedAt,
	}

	created, err := s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	// Link the task back to its invoice
	if task != nil {
		task.InvoiceID = &created.ID
		if err := s.repo.UpdateTask(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to link task to invoice: %w", err)
		}
		s.publishEvent(events.KindTask, task.ID)
	}

	s.publishEvent(events.KindInvoice, created.ID)

	return created, nil
}

// UpdateInvoice changes billing inputs and recomputes the totals
func (s *service) UpdateInvoice(ctx context.Context, req UpdateInvoiceRequest) (*models.Invoice, error) {
	if req.InvoiceID <= 0 {
		return nil, ErrInvalidInvoiceID
	}

	inv, err := s.repo.GetInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if req.ServiceRate != nil {
		inv.ServiceRate = *req.ServiceRate
	}
	if req.Currency != nil {
		inv.Currency = *req.Currency
	}
	if req.DiscountAmount != nil {
		inv.DiscountAmount = *req.DiscountAmount
	}
	if req.TaxPercent != nil {
		inv.TaxPercent = *req.TaxPercent
	}
	if req.IssuedAt != nil {
		inv.IssuedAt = *req.IssuedAt
	}

	if err := validateBilling(inv.ServiceRate, inv.DiscountAmount, inv.TaxPercent); err != nil {
		return nil, err
	}

	totals := finance.Compute(inv.ServiceRate, inv.DiscountAmount, inv.TaxPercent)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.publishEvent(events.KindInvoice, inv.ID)

	return inv, nil
}

// nextInvoiceNumber generates a sequential number like INV-2026-0007.
// The database's single writer connection keeps this race-free in practice.
func (s *service) nextInvoiceNumber(ctx context.Context) (string, error) {
	existing, err := s.repo.GetAllInvoices(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count invoices: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", time.Now().Year(), len(existing)+1), nil
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

// publishEvent notifies connected clients of a changed entity
func (s *service) publishEvent(kind events.EntityKind, id int) {
	if s.eventClient == nil {
		return
	}

	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventEntityChanged,
		Kind:      kind,
		EntityID:  id,
		Timestamp: time.Now(),
	}, 3)
}
