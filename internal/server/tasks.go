package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/digirix/praxis/internal/models"
	"github.com/digirix/praxis/internal/services/task"
)

// createTaskBody is the JSON body accepted by POST /tasks
type createTaskBody struct {
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	IsAdmin             bool    `json:"isAdmin"`
	TaskType            string  `json:"taskType"`
	DueDate             *string `json:"dueDate"`
	ComplianceFrequency string  `json:"complianceFrequency"`
	ComplianceYears     string  `json:"complianceYears"`
	ComplianceStart     *string `json:"complianceStartDate"`
	IsRecurring         bool    `json:"isRecurring"`
	ServiceRate         float64 `json:"serviceRate"`
	Currency            string  `json:"currency"`
	DiscountAmount      float64 `json:"discountAmount"`
	TaxPercent          float64 `json:"taxPercent"`
}

// updateTaskBody is the JSON body accepted by PUT /tasks/{id}. All fields
// are optional; a payload carrying only statusId routes through the
// transition rule instead of a plain field update.
type updateTaskBody struct {
	Title               *string  `json:"title"`
	Description         *string  `json:"description"`
	TaskType            *string  `json:"taskType"`
	StatusID            *int     `json:"statusId"`
	DueDate             *string  `json:"dueDate"`
	ComplianceFrequency *string  `json:"complianceFrequency"`
	ComplianceYears     *string  `json:"complianceYears"`
	ComplianceStart     *string  `json:"complianceStartDate"`
	IsRecurring         *bool    `json:"isRecurring"`
	ServiceRate         *float64 `json:"serviceRate"`
	Currency            *string  `json:"currency"`
	DiscountAmount      *float64 `json:"discountAmount"`
	TaxPercent          *float64 `json:"taxPercent"`
}

func (b updateTaskBody) statusOnly() bool {
	return b.StatusID != nil &&
		b.Title == nil && b.Description == nil && b.TaskType == nil &&
		b.DueDate == nil && b.ComplianceFrequency == nil && b.ComplianceYears == nil &&
		b.ComplianceStart == nil && b.IsRecurring == nil &&
		b.ServiceRate == nil && b.Currency == nil && b.DiscountAmount == nil && b.TaxPercent == nil
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.tasks.ListTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]taskSummaryPayload, 0, len(summaries))
	for _, sum := range summaries {
		payload = append(payload, toTaskSummaryPayload(sum))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var body createTaskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: "invalid JSON body"}})
		return
	}

	req := task.CreateTaskRequest{
		Title:               body.Title,
		Description:         body.Description,
		IsAdmin:             body.IsAdmin,
		TaskType:            body.TaskType,
		ComplianceFrequency: body.ComplianceFrequency,
		ComplianceYears:     body.ComplianceYears,
		IsRecurring:         body.IsRecurring,
		ServiceRate:         body.ServiceRate,
		Currency:            body.Currency,
		DiscountAmount:      body.DiscountAmount,
		TaxPercent:          body.TaxPercent,
	}

	var err error
	if req.DueDate, err = parseDatePtr(body.DueDate); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{Message: err.Error(), Field: "dueDate"}})
		return
	}
	if req.ComplianceStart, err = parseDatePtr(body.ComplianceStart); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{Message: err.Error(), Field: "complianceStartDate"}})
		return
	}

	created, err := s.tasks.CreateTask(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskPayload(created))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid task ID"}})
		return
	}

	t, err := s.tasks.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskPayload(t))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid task ID"}})
		return
	}

	var body updateTaskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: "invalid JSON body"}})
		return
	}

	// A statusId-only payload is a transition, not a field update
	if body.statusOnly() {
		moved, err := s.tasks.Transition(r.Context(), id, *body.StatusID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskPayload(moved))
		return
	}

	// A status change riding along with other fields is checked up front so
	// field edits never persist ahead of a rejected transition.
	if body.StatusID != nil {
		if err := s.checkTransition(r.Context(), id, *body.StatusID); err != nil {
			writeError(w, err)
			return
		}
	}

	req := task.UpdateTaskRequest{
		TaskID:              id,
		Title:               body.Title,
		Description:         body.Description,
		TaskType:            body.TaskType,
		ComplianceFrequency: body.ComplianceFrequency,
		ComplianceYears:     body.ComplianceYears,
		IsRecurring:         body.IsRecurring,
		ServiceRate:         body.ServiceRate,
		Currency:            body.Currency,
		DiscountAmount:      body.DiscountAmount,
		TaxPercent:          body.TaxPercent,
	}

	if body.DueDate != nil {
		due, err := parseDatePtr(body.DueDate)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{Message: err.Error(), Field: "dueDate"}})
			return
		}
		req.DueDate = &due
	}
	if body.ComplianceStart != nil {
		start, err := parseDatePtr(body.ComplianceStart)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{Message: err.Error(), Field: "complianceStartDate"}})
			return
		}
		req.ComplianceStart = &start
	}

	updated, err := s.tasks.UpdateTask(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	// The transition itself still runs after the field update
	if body.StatusID != nil {
		updated, err = s.tasks.Transition(r.Context(), id, *body.StatusID)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toTaskPayload(updated))
}

// checkTransition verifies a status change would be legal without applying
// it, using the same reachability rule Transition enforces. A change to the
// task's current status passes, matching Transition's no-op behavior.
func (s *Server) checkTransition(ctx context.Context, taskID, targetStatusID int) error {
	t, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if t.StatusID == targetStatusID {
		return nil
	}

	if _, err := s.statuses.GetStatus(ctx, targetStatusID); err != nil {
		return err
	}

	reachable, err := s.tasks.AvailableTransitions(ctx, taskID)
	if err != nil {
		return err
	}
	for _, st := range reachable {
		if st.ID == targetStatusID {
			return nil
		}
	}
	return models.ErrTransitionNotAllowed
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid task ID"}})
		return
	}

	if err := s.tasks.DeleteTask(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAvailableTransitions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid task ID"}})
		return
	}

	reachable, err := s.tasks.AvailableTransitions(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]statusPayload, 0, len(reachable))
	for _, st := range reachable {
		payload = append(payload, toStatusPayload(st))
	}
	writeJSON(w, http.StatusOK, payload)
}

// parseDatePtr parses an optional wire date; empty or absent means nil
func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
