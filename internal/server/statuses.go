package server

import (
	"encoding/json"
	"net/http"
)

// statusBody is the JSON body accepted by status configuration writes
type statusBody struct {
	Name string `json:"name"`
	Rank string `json:"rank"`
}

func (s *Server) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.statuses.ListStatuses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]statusPayload, 0, len(statuses))
	for _, st := range statuses {
		payload = append(payload, toStatusPayload(st))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid status ID"}})
		return
	}

	st, err := s.statuses.GetStatus(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatusPayload(st))
}

func (s *Server) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: "invalid JSON body"}})
		return
	}

	created, err := s.statuses.CreateStatus(r.Context(), body.Name, body.Rank)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStatusPayload(created))
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid status ID"}})
		return
	}

	var body statusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{Message: "invalid JSON body"}})
		return
	}

	updated, err := s.statuses.UpdateStatus(r.Context(), id, body.Name, body.Rank)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatusPayload(updated))
}

func (s *Server) handleDeleteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid status ID"}})
		return
	}

	if err := s.statuses.DeleteStatus(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
