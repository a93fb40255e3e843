package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/digirix/praxis/internal/compliance"
	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/models"
	"github.com/digirix/praxis/internal/services/invoice"
	"github.com/digirix/praxis/internal/services/status"
	"github.com/digirix/praxis/internal/services/task"
	"github.com/digirix/praxis/internal/timer"
	"github.com/digirix/praxis/internal/workflow"
)

// errorEnvelope is the JSON error body returned by every handler
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto the API's status codes:
// missing entities are 404, rejected input is 422, and conflicts with
// current state or configuration are 409.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Message: err.Error()}

	var fieldErr compliance.FieldError
	if errors.As(err, &fieldErr) {
		body.Field = fieldErr.Field
		writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: body})
		return
	}

	writeJSON(w, statusCodeFor(err), errorEnvelope{Error: body})
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound),
		errors.Is(err, task.ErrStatusNotFound):
		return http.StatusNotFound

	case errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrTitleTooLong),
		errors.Is(err, task.ErrInvalidTaskID),
		errors.Is(err, task.ErrInvalidStatusID),
		errors.Is(err, task.ErrNegativeRate),
		errors.Is(err, task.ErrNegativeDiscount),
		errors.Is(err, task.ErrInvalidTaxPercent),
		errors.Is(err, invoice.ErrInvalidInvoiceID),
		errors.Is(err, invoice.ErrNegativeRate),
		errors.Is(err, invoice.ErrNegativeDiscount),
		errors.Is(err, invoice.ErrInvalidTaxPercent),
		errors.Is(err, status.ErrEmptyName),
		errors.Is(err, status.ErrInvalidStatusID),
		errors.Is(err, timer.ErrInvalidTaskID),
		errors.Is(err, models.ErrInvalidRank),
		errors.Is(err, compliance.ErrUnknownFrequency):
		return http.StatusUnprocessableEntity

	case errors.Is(err, models.ErrTransitionNotAllowed),
		errors.Is(err, models.ErrTerminalStatus),
		errors.Is(err, models.ErrCompletedStatusNotFound),
		errors.Is(err, task.ErrNoInitialStatus),
		errors.Is(err, task.ErrTransitionInFlight),
		errors.Is(err, workflow.ErrDuplicateRank),
		errors.Is(err, workflow.ErrMultipleCompleted),
		errors.Is(err, workflow.ErrBrokenProgressChain),
		errors.Is(err, invoice.ErrTaskAlreadyInvoiced),
		errors.Is(err, timer.ErrTimerAlreadyRunning),
		errors.Is(err, timer.ErrTimerNotRunning):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
