package app

import (
	"context"
	"log/slog"

	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/database"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/renumber"
	dealservice "github.com/thenoetrevino/dealflow/internal/services/deal"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config

	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates; nil when no daemon is running
	eventClient events.EventPublisher

	logger *slog.Logger

	// Engine renumbers stages in the store after a move
	Engine *renumber.Engine

	// Service layer (business logic)
	DealService dealservice.Service
}

// New creates a new App with all services initialized.
// A nil cfg uses the default configuration.
func New(repo database.DataStore, cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	ac := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(ac)
	}
	if ac.logger == nil {
		ac.logger = slog.Default()
	}

	engine := renumber.NewEngine(repo,
		renumber.WithPerPage(cfg.Store.PerPage),
		renumber.WithAppendPolicy(cfg.AppendPolicy()),
		renumber.WithLogger(ac.logger),
	)

	return &App{
		Config:      cfg,
		repo:        repo,
		eventClient: ac.eventClient,
		logger:      ac.logger,
		Engine:      engine,
		DealService: dealservice.NewService(repo, engine, cfg.Stages, ac.eventClient),
	}
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// EventClient returns the daemon connection, or nil when running without one
func (a *App) EventClient() events.EventPublisher {
	return a.eventClient
}

// NewBoardController builds a drag controller over a fresh view of the
// configured stages. Call Refresh on it to load the board.
func (a *App) NewBoardController(opts ...board.ControllerOption) *board.Controller {
	base := []board.ControllerOption{board.WithControllerLogger(a.logger)}
	if a.eventClient != nil {
		base = append(base, board.WithEventPublisher(a.eventClient))
	}

	refetch := func(ctx context.Context) ([]*models.Deal, error) {
		return a.repo.List(ctx, models.ListParams{})
	}

	return board.NewController(board.NewView(a.Config.Stages), a.Engine, refetch, append(base, opts...)...)
}

// Close releases the daemon connection if there is one
func (a *App) Close() error {
	if a.eventClient != nil {
		return a.eventClient.Close()
	}
	return nil
}
