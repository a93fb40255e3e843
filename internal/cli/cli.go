package cli

import (
	"context"
	"fmt"

	"github.com/digirix/praxis/internal/app"
	"github.com/digirix/praxis/internal/config"
	"github.com/digirix/praxis/internal/database"
	"github.com/digirix/praxis/internal/events"
)

type contextKey string

// AppContextKey carries a pre-built *app.App through the command context.
// Tests use it to inject an app backed by a temporary database.
const AppContextKey contextKey = "praxisApp"

// CLI represents the CLI application context
type CLI struct {
	App *app.App

	ownsApp bool
}

// NewCLI initializes the CLI with database and optional daemon connection
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	repo := database.NewRepository(db)

	// Try to connect to daemon (optional - silent fallback)
	var publisher events.EventPublisher
	if client, err := events.NewClient(cfg.SocketPath); err == nil {
		if err := client.Connect(ctx); err == nil {
			publisher = client
		}
	}

	return &CLI{
		App:     app.New(repo, publisher),
		ownsApp: true,
	}, nil
}

// WithApp returns a context carrying an app container for FromContext to
// pick up instead of building one from the real config.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, AppContextKey, a)
}

// FromContext returns the CLI bound to the app in the context if one was
// injected, otherwise it initializes a full CLI.
func FromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(AppContextKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx)
}

// Close cleans up CLI resources. Injected apps are left for their owner
// to close.
func (c *CLI) Close() error {
	if c.ownsApp {
		return c.App.Close()
	}
	return nil
}
