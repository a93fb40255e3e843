package app

import (
	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/events"
	invoiceservice "github.com/digirix/praxis/internal/services/invoice"
	statusservice "github.com/digirix/praxis/internal/services/status"
	taskservice "github.com/digirix/praxis/internal/services/task"
	"github.com/digirix/praxis/internal/timer"
)

// App holds all application services and provides dependency injection.
// It is the single container the CLI and the HTTP server build from.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	// Service layer (business logic)
	TaskService    taskservice.Service
	StatusService  statusservice.Service
	InvoiceService invoiceservice.Service
	Tracker        *timer.Tracker
}

// New creates a new App with all services initialized.
func New(repo database.DataStore, eventClient events.EventPublisher) *App {
	return &App{
		repo:           repo,
		eventClient:    eventClient,
		TaskService:    taskservice.NewService(repo, eventClient),
		StatusService:  statusservice.NewService(repo, eventClient),
		InvoiceService: invoiceservice.NewService(repo, eventClient),
		Tracker:        timer.NewTracker(repo),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// EventClient returns the event publisher, which may be nil when the
// daemon is not running.
func (a *App) EventClient() events.EventPublisher {
	return a.eventClient
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	if a.eventClient != nil {
		return a.eventClient.Close()
	}
	return nil
}
