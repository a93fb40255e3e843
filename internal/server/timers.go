package server

import (
	"net/http"
)

// timerStartedPayload is returned by POST /tasks/{id}/timer/start
type timerStartedPayload struct {
	TaskID    int    `json:"taskId"`
	StartedAt string `json:"startedAt"`
}

func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid task ID"}})
		return
	}

	started, err := s.tracker.StartTimer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, timerStartedPayload{
		TaskID:    id,
		StartedAt: formatTime(started),
	})
}

func (s *Server) handleStopTimer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{Message: "invalid task ID"}})
		return
	}

	entry, err := s.tracker.StopTimer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimeEntryPayload(entry))
}
