package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/models"
)

var (
	// ErrInvalidSource indicates the drag source slot holds no deal
	ErrInvalidSource = errors.New("no deal at drag source")

	// ErrUnknownDestination indicates a drop onto a stage the board does not have
	ErrUnknownDestination = errors.New("drop target is not a board stage")
)

// Renumberer persists a move
type Renumberer interface {
	Renumber(ctx context.Context, source *models.Deal, dest models.Destination) error
}

// RefetchFunc loads the authoritative deal list
type RefetchFunc func(ctx context.Context) ([]*models.Deal, error)

// Controller turns drag-end results into an immediate local reorder followed
// by an asynchronous store renumber and refetch.
type Controller struct {
	view      *View
	engine    Renumberer
	refetch   RefetchFunc
	publisher events.EventPublisher
	logger    *slog.Logger
	onError   func(error)

	wg sync.WaitGroup
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithEventPublisher publishes a change event after each successful renumber
func WithEventPublisher(p events.EventPublisher) ControllerOption {
	return func(c *Controller) {
		c.publisher = p
	}
}

// WithControllerLogger sets the controller logger
func WithControllerLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorHandler receives failures of the asynchronous remote pass
func WithErrorHandler(fn func(error)) ControllerOption {
	return func(c *Controller) {
		c.onError = fn
	}
}

// NewController wires a view to a renumber engine and a refetch source
func NewController(view *View, engine Renumberer, refetch RefetchFunc, opts ...ControllerOption) *Controller {
	c := &Controller{
		view:    view,
		engine:  engine,
		refetch: refetch,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View returns the controlled view
func (c *Controller) View() *View {
	return c.view
}

// OnDragEnd handles a released card.
//
// Drops outside any stage and drops onto the source slot return immediately.
// Otherwise the local view is reordered before OnDragEnd returns and the store
// is renumbered in the background; Wait blocks until that pass is done.
func (c *Controller) OnDragEnd(ctx context.Context, result models.DragResult) error {
	if result.IsNoop() {
		return nil
	}
	drop := *result.Destination

	c.view.mu.Lock()
	current := c.view.current

	source := current.At(result.Source)
	if source == nil {
		c.view.mu.Unlock()
		return fmt.Errorf("%w: %s[%d]", ErrInvalidSource, result.Source.Stage, result.Source.Index)
	}
	if _, ok := current[drop.Stage]; !ok {
		c.view.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownDestination, drop.Stage)
	}

	// The store is told about the deal occupying the drop slot; an empty slot means append.
	target := models.AppendTo(drop.Stage)
	if occupant := current.At(drop); occupant != nil {
		target = models.DestinationAt(occupant.Stage, occupant.Index)
	}

	c.view.current = ReorderLocal(source, result.Source, models.DestinationAt(drop.Stage, drop.Index), current)
	c.view.revision++
	c.view.mu.Unlock()

	moved := source.Clone()
	moveID := uuid.NewString()

	c.logger.Info("deal dropped",
		"move_id", moveID,
		"deal_id", moved.ID,
		"from_stage", result.Source.Stage,
		"from_index", result.Source.Index,
		"to_stage", drop.Stage,
		"to_index", drop.Index)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.persist(context.WithoutCancel(ctx), moveID, moved, target)
	}()

	return nil
}

// persist renumbers the store and then reconciles the view with it
func (c *Controller) persist(ctx context.Context, moveID string, moved *models.Deal, target models.Destination) {
	start := time.Now()

	if err := c.engine.Renumber(ctx, moved, target); err != nil {
		c.logger.Error("remote renumber failed",
			"move_id", moveID,
			"deal_id", moved.ID,
			"error", err)
		c.reportError(err)
	} else {
		c.logger.Debug("remote renumber done",
			"move_id", moveID,
			"deal_id", moved.ID,
			"duration", time.Since(start))

		stages := []string{moved.Stage}
		if target.Stage != moved.Stage {
			stages = append(stages, target.Stage)
		}
		_ = events.PublishWithRetry(c.publisher, events.Event{
			Type:      events.EventDealsChanged,
			DealID:    moved.ID,
			MoveID:    moveID,
			Stages:    stages,
			Timestamp: time.Now(),
		}, 3)
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.Error("refetch after renumber failed", "move_id", moveID, "error", err)
		c.reportError(err)
	}
}

// Refresh refetches all deals and syncs the view. It reports failures only.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.refetch == nil {
		return nil
	}

	deals, err := c.refetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to refetch deals: %w", err)
	}

	if c.view.Sync(deals) {
		c.logger.Debug("board view updated from store", "deals", len(deals))
	}
	return nil
}

// Wait blocks until every in-flight remote pass has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) reportError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}
