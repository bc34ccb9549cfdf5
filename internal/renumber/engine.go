package renumber

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// Store is the subset of the deal store the engine needs
type Store interface {
	List(ctx context.Context, params models.ListParams) ([]*models.Deal, error)
	Update(ctx context.Context, params models.UpdateParams) (*models.Deal, error)
}

// Engine applies planned index shifts against a Store
type Engine struct {
	store   Store
	perPage int
	policy  AppendPolicy
	logger  *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithPerPage sets how many deals are fetched per stage
func WithPerPage(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.perPage = n
		}
	}
}

// WithAppendPolicy sets how a nil destination index is resolved
func WithAppendPolicy(p AppendPolicy) Option {
	return func(e *Engine) {
		if p != "" {
			e.policy = p
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine over store
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		perPage: models.DefaultPerPage,
		policy:  AppendPastEnd,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's append policy
func (e *Engine) Policy() AppendPolicy {
	return e.policy
}

// Renumber moves source to dest in the store.
//
// It reads the touched stage(s) once, plans the shifts, then issues every
// write concurrently and waits for all of them. A failed read returns before
// anything is written; a failed write returns ErrWriteFailed and leaves the
// writes that did succeed in place.
func (e *Engine) Renumber(ctx context.Context, source *models.Deal, dest models.Destination) error {
	if source == nil {
		return ErrNilSource
	}

	snap, err := e.Snapshot(ctx, source.Stage, dest.Stage)
	if err != nil {
		return err
	}

	writes := Plan(snap, source, dest, e.policy)

	e.logger.Debug("renumbering stage",
		"deal_id", source.ID,
		"from_stage", source.Stage,
		"from_index", source.Index,
		"to_stage", dest.Stage,
		"writes", len(writes))

	return e.Apply(ctx, writes)
}

// Snapshot fetches the source stage and, when different, the destination stage concurrently
func (e *Engine) Snapshot(ctx context.Context, sourceStage, destStage string) (Snapshot, error) {
	var snap Snapshot

	if sourceStage == destStage {
		column, err := e.FetchStage(ctx, sourceStage)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Source = column
		return snap, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		column, err := e.FetchStage(gctx, sourceStage)
		snap.Source = column
		return err
	})
	g.Go(func() error {
		column, err := e.FetchStage(gctx, destStage)
		snap.Destination = column
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// FetchStage lists a stage sorted by index ascending
func (e *Engine) FetchStage(ctx context.Context, stage string) ([]*models.Deal, error) {
	deals, err := e.store.List(ctx, models.ListParams{
		Sort:       models.Sort{Field: models.SortFieldIndex, Order: models.SortAsc},
		Pagination: models.Pagination{Page: 1, PerPage: e.perPage},
		Filter:     models.DealFilter{Stage: stage},
	})
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFetchFailed, stage, err)
	}

	if len(deals) >= e.perPage {
		e.logger.Warn("stage fills a whole page, deals past it are not renumbered",
			"stage", stage,
			"per_page", e.perPage)
	}

	return deals, nil
}

// Apply issues all writes concurrently and waits for every one of them
func (e *Engine) Apply(ctx context.Context, writes WriteSet) error {
	var g errgroup.Group
	for _, w := range writes {
		g.Go(func() error {
			if _, err := e.store.Update(ctx, w.Params()); err != nil {
				return fmt.Errorf("%w: deal %d to index %d: %w", ErrWriteFailed, w.ID, w.Index, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Error("renumber write batch failed", "writes", len(writes), "error", err)
		return err
	}
	return nil
}

// Compact rewrites a stage so indices match positions again.
// It returns how many deals were rewritten.
func (e *Engine) Compact(ctx context.Context, stage string) (int, error) {
	column, err := e.FetchStage(ctx, stage)
	if err != nil {
		return 0, err
	}

	writes := PlanCompact(column)
	if len(writes) == 0 {
		return 0, nil
	}

	e.logger.Info("compacting stage", "stage", stage, "writes", len(writes))
	if err := e.Apply(ctx, writes); err != nil {
		return 0, err
	}
	return len(writes), nil
}

// CloseGap shifts up every deal that sat below removed in its stage
func (e *Engine) CloseGap(ctx context.Context, removed *models.Deal) error {
	if removed == nil {
		return ErrNilSource
	}

	column, err := e.FetchStage(ctx, removed.Stage)
	if err != nil {
		return err
	}
	return e.Apply(ctx, PlanRemoval(column, removed))
}
