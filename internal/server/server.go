// Package server exposes the praxis REST API. Routing uses the standard
// library mux; all request and response bodies are JSON with ISO-8601
// dates at the boundary.
package server

import (
	"net/http"

	"github.com/digirix/praxis/internal/services/invoice"
	"github.com/digirix/praxis/internal/services/status"
	"github.com/digirix/praxis/internal/services/task"
	"github.com/digirix/praxis/internal/timer"
)

// Server wires the service layer to HTTP handlers
type Server struct {
	tasks    task.Service
	statuses status.Service
	invoices invoice.Service
	tracker  *timer.Tracker
	metrics  *Metrics
}

// NewServer creates an API server over the given services
func NewServer(tasks task.Service, statuses status.Service, invoices invoice.Service, tracker *timer.Tracker) *Server {
	return &Server{
		tasks:    tasks,
		statuses: statuses,
		invoices: invoices,
		tracker:  tracker,
		metrics:  NewMetrics(),
	}
}

// Handler returns the routed handler with logging and request-ID
// middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("POST /tasks", s.handleCreateTask)
	mux.HandleFunc("GET /tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PUT /tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("GET /tasks/{id}/transitions", s.handleAvailableTransitions)

	mux.HandleFunc("POST /tasks/{id}/timer/start", s.handleStartTimer)
	mux.HandleFunc("POST /tasks/{id}/timer/stop", s.handleStopTimer)

	mux.HandleFunc("GET /setup/task-statuses", s.handleListStatuses)
	mux.HandleFunc("POST /setup/task-statuses", s.handleCreateStatus)
	mux.HandleFunc("GET /setup/task-statuses/{id}", s.handleGetStatus)
	mux.HandleFunc("PUT /setup/task-statuses/{id}", s.handleUpdateStatus)
	mux.HandleFunc("DELETE /setup/task-statuses/{id}", s.handleDeleteStatus)

	mux.HandleFunc("GET /finance/invoices", s.handleListInvoices)
	mux.HandleFunc("POST /finance/invoices", s.handleCreateInvoice)
	mux.HandleFunc("GET /finance/invoices/{id}", s.handleGetInvoice)
	mux.HandleFunc("PUT /finance/invoices/{id}", s.handleUpdateInvoice)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	return s.withRequestID(s.withLogging(s.withMetrics(mux)))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}
