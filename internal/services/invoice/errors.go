package invoice

import "errors"

// Domain errors for invoice service
var (
	// Validation errors
	ErrInvalidInvoiceID  = errors.New("invalid invoice ID")
	ErrNegativeRate      = errors.New("service rate cannot be negative")
	ErrNegativeDiscount  = errors.New("discount amount cannot be negative")
	ErrInvalidTaxPercent = errors.New("tax percent must be between 0 and 100")

	// Business logic errors
	ErrTaskAlreadyInvoiced = errors.New("task is already linked to an invoice")
)
