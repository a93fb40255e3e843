package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/digirix/praxis/internal/compliance"
	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/models"
	invoiceservice "github.com/digirix/praxis/internal/services/invoice"
	statusservice "github.com/digirix/praxis/internal/services/status"
	taskservice "github.com/digirix/praxis/internal/services/task"
	"github.com/digirix/praxis/internal/timer"
	"github.com/digirix/praxis/internal/workflow"
)

// ParseIDArg reads a positive integer ID from the first positional argument.
func ParseIDArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing ID argument")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("ID must be a positive integer, got: %s", args[0])
	}
	return id, nil
}

// ParseDateFlag parses a date flag value, accepting YYYY-MM-DD or RFC3339.
// An empty value returns nil.
func ParseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return &t, nil
}

// FormatMoney renders a monetary amount with its currency code.
func FormatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// FormatDate renders a nullable date for display.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// ExitCodeFor maps service errors to CLI exit codes.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var fieldErr compliance.FieldError
	if errors.As(err, &fieldErr) {
		return ExitValidation
	}

	switch {
	case errors.Is(err, database.ErrNotFound),
		errors.Is(err, taskservice.ErrStatusNotFound):
		return ExitNotFound

	case errors.Is(err, taskservice.ErrEmptyTitle),
		errors.Is(err, taskservice.ErrTitleTooLong),
		errors.Is(err, taskservice.ErrInvalidTaskID),
		errors.Is(err, taskservice.ErrInvalidStatusID),
		errors.Is(err, taskservice.ErrNegativeRate),
		errors.Is(err, taskservice.ErrNegativeDiscount),
		errors.Is(err, taskservice.ErrInvalidTaxPercent),
		errors.Is(err, statusservice.ErrEmptyName),
		errors.Is(err, statusservice.ErrInvalidStatusID),
		errors.Is(err, invoiceservice.ErrInvalidInvoiceID),
		errors.Is(err, invoiceservice.ErrNegativeRate),
		errors.Is(err, invoiceservice.ErrNegativeDiscount),
		errors.Is(err, invoiceservice.ErrInvalidTaxPercent),
		errors.Is(err, timer.ErrInvalidTaskID),
		errors.Is(err, models.ErrInvalidRank),
		errors.Is(err, compliance.ErrUnknownFrequency):
		return ExitValidation

	case errors.Is(err, models.ErrTransitionNotAllowed),
		errors.Is(err, models.ErrTerminalStatus),
		errors.Is(err, models.ErrCompletedStatusNotFound),
		errors.Is(err, taskservice.ErrNoInitialStatus),
		errors.Is(err, taskservice.ErrTransitionInFlight),
		errors.Is(err, workflow.ErrDuplicateRank),
		errors.Is(err, workflow.ErrMultipleCompleted),
		errors.Is(err, workflow.ErrBrokenProgressChain),
		errors.Is(err, invoiceservice.ErrTaskAlreadyInvoiced),
		errors.Is(err, timer.ErrTimerAlreadyRunning),
		errors.Is(err, timer.ErrTimerNotRunning):
		return ExitConflict
	}

	return ExitError
}
