package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/digirix/praxis/internal/app"
	"github.com/digirix/praxis/internal/config"
	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/events"
	"github.com/digirix/praxis/internal/logging"
	"github.com/digirix/praxis/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := logging.Init(); err != nil {
		slog.Warn("failed to initialize file logging", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()
	repo := database.NewRepository(db)

	// Optional daemon connection for live-update events
	var publisher events.EventPublisher
	if client, err := events.NewClient(cfg.SocketPath); err == nil {
		if err := client.Connect(ctx); err == nil {
			publisher = client
			defer func() {
				if err := client.Close(); err != nil {
					slog.Error("error closing event client", "error", err)
				}
			}()
		}
	}

	application := app.New(repo, publisher)

	srv := server.NewServer(
		application.TaskService,
		application.StatusService,
		application.InvoiceService,
		application.Tracker,
	)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("praxis server listening", "addr", cfg.ListenAddr, "pid", os.Getpid())

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("praxis server shutting down gracefully")
}
