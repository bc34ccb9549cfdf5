package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/dealflow/internal/app"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/database"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/logging"
)

type appKey struct{}

// WithApp stores a ready application in ctx; GetCLIFromContext uses it
// instead of opening the configured database. Tests use this to inject an
// in-memory store.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// CLI represents the CLI application context
type CLI struct {
	App     *app.App
	closers []io.Closer
}

// GetCLIFromContext returns a CLI over the app stored with WithApp, or
// initializes one from the user's configuration.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx)
}

// NewCLI loads configuration, opens the database and connects to the daemon
// if one is running.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	styles.Apply(cfg.Colors)

	c := &CLI{}

	logCloser, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.closers = append(c.closers, logCloser)

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.closers = append(c.closers, db)

	opts := []app.Option{app.WithLogger(slog.Default())}

	// the daemon is optional: without it, changes are simply not broadcast
	client := events.NewClient(cfg.Daemon.SocketPath)
	if err := client.Connect(ctx); err == nil {
		opts = append(opts, app.WithEventPublisher(client))
	} else {
		slog.Debug("running without daemon", "error", events.ClassifyDaemonError(err))
		_ = client.Close()
	}

	c.App = app.New(database.NewRepository(db), cfg, opts...)
	return c, nil
}

// Close cleans up CLI resources. An injected app is left open for its owner.
func (c *CLI) Close() error {
	var errs []error
	if len(c.closers) > 0 && c.App != nil {
		errs = append(errs, c.App.Close())
	}
	// close in reverse order: database, then the log file
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	return errors.Join(errs...)
}
