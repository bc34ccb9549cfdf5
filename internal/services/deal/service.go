package deal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/database"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/renumber"
)

const maxNameLength = 255

// Service defines all deal-related business operations
type Service interface {
	// Read operations
	ListDeals(ctx context.Context, req ListRequest) ([]*models.Deal, error)
	GetBoard(ctx context.Context) (board.DealsByStage, error)
	GetDeal(ctx context.Context, id int) (*models.Deal, error)

	// Write operations
	CreateDeal(ctx context.Context, req CreateDealRequest) (*models.Deal, error)
	DeleteDeal(ctx context.Context, id int) error

	// Ordering
	MoveDeal(ctx context.Context, req MoveDealRequest) (*models.Deal, error)
	CompactStage(ctx context.Context, stage string) (int, error)
}

// ListRequest filters, sorts and paginates a deal listing.
// Zero values list every deal ordered by index.
type ListRequest struct {
	Stage     string
	SortField string
	SortOrder models.SortOrder
	Page      int
	PerPage   int
}

// CreateDealRequest encapsulates all data needed to create a deal.
// The deal is appended to the end of Stage.
type CreateDealRequest struct {
	Name        string
	Description string
	Category    string
	Amount      int64
	Stage       string
}

// MoveDealRequest moves a deal to ToIndex in ToStage.
// A nil ToIndex appends to the end of the stage.
type MoveDealRequest struct {
	DealID  int
	ToStage string
	ToIndex *int
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	engine      *renumber.Engine
	stages      []models.Stage
	eventClient events.EventPublisher
}

// NewService creates a new deal service
func NewService(repo database.DataStore, engine *renumber.Engine, stages []models.Stage, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		engine:      engine,
		stages:      stages,
		eventClient: eventClient,
	}
}

// ListDeals returns deals matching the request
func (s *service) ListDeals(ctx context.Context, req ListRequest) ([]*models.Deal, error) {
	if req.Stage != "" {
		if err := s.validateStage(req.Stage); err != nil {
			return nil, err
		}
	}
	if req.Page < 0 || req.PerPage < 0 {
		return nil, ErrInvalidPage
	}

	deals, err := s.repo.List(ctx, models.ListParams{
		Sort:       models.Sort{Field: req.SortField, Order: req.SortOrder},
		Pagination: models.Pagination{Page: req.Page, PerPage: req.PerPage},
		Filter:     models.DealFilter{Stage: req.Stage},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

// GetBoard returns every deal grouped by the configured stages
func (s *service) GetBoard(ctx context.Context) (board.DealsByStage, error) {
	deals, err := s.repo.List(ctx, models.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board.GroupByStage(deals, s.stages), nil
}

// GetDeal retrieves a single deal
func (s *service) GetDeal(ctx context.Context, id int) (*models.Deal, error) {
	if id <= 0 {
		return nil, ErrInvalidDealID
	}
	return s.repo.GetByID(ctx, id)
}

// CreateDeal validates the request and appends the deal to its stage
func (s *service) CreateDeal(ctx context.Context, req CreateDealRequest) (*models.Deal, error) {
	if err := s.validateCreateDeal(req); err != nil {
		return nil, err
	}

	d, err := s.repo.Append(ctx, &models.Deal{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Stage:       req.Stage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	s.publishDealEvent(d.ID, d.Stage)
	return d, nil
}

// DeleteDeal removes a deal and closes the gap it leaves in its stage
func (s *service) DeleteDeal(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidDealID
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	if err := s.engine.CloseGap(ctx, removed); err != nil {
		return fmt.Errorf("failed to close gap in stage %q: %w", removed.Stage, err)
	}

	s.publishDealEvent(removed.ID, removed.Stage)
	return nil
}

// MoveDeal moves a deal the way a drag would.
//
// ToIndex names a slot in the target stage as it is before the move; the
// deal occupying that slot gives the store-side target. An empty slot (or a
// nil ToIndex) appends. Moving a deal onto its own slot writes nothing.
func (s *service) MoveDeal(ctx context.Context, req MoveDealRequest) (*models.Deal, error) {
	if err := s.validateMoveDeal(req); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, req.DealID)
	if err != nil {
		return nil, err
	}

	if req.ToIndex != nil && req.ToStage == current.Stage && *req.ToIndex == current.Index {
		return current, nil
	}

	target := models.AppendTo(req.ToStage)
	if req.ToIndex != nil {
		column, err := s.engine.FetchStage(ctx, req.ToStage)
		if err != nil {
			return nil, err
		}
		if *req.ToIndex < len(column) {
			occupant := column[*req.ToIndex]
			target = models.DestinationAt(occupant.Stage, occupant.Index)
		}
	}

	if err := s.engine.Renumber(ctx, current, target); err != nil {
		return nil, fmt.Errorf("failed to move deal %d: %w", current.ID, err)
	}

	moved, err := s.repo.GetByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	s.publishDealEvent(moved.ID, current.Stage, moved.Stage)
	return moved, nil
}

// CompactStage rewrites a stage's indices to 0..N-1 and returns how many deals changed
func (s *service) CompactStage(ctx context.Context, stage string) (int, error) {
	if err := s.validateStage(stage); err != nil {
		return 0, err
	}

	n, err := s.engine.Compact(ctx, stage)
	if err != nil {
		return 0, fmt.Errorf("failed to compact stage %q: %w", stage, err)
	}

	if n > 0 {
		s.publishDealEvent(0, stage)
	}
	return n, nil
}

// ============================================================================
// VALIDATION
// ============================================================================

func (s *service) validateCreateDeal(req CreateDealRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	if req.Amount < 0 {
		return ErrInvalidAmount
	}
	return s.validateStage(req.Stage)
}

func (s *service) validateMoveDeal(req MoveDealRequest) error {
	if req.DealID <= 0 {
		return ErrInvalidDealID
	}
	if req.ToIndex != nil && *req.ToIndex < 0 {
		return ErrInvalidIndex
	}
	return s.validateStage(req.ToStage)
}

func (s *service) validateStage(stage string) error {
	if _, ok := models.FindStage(s.stages, stage); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	return nil
}

// publishDealEvent notifies other clients that the given stages changed
func (s *service) publishDealEvent(dealID int, stages ...string) {
	if len(stages) == 2 && stages[0] == stages[1] {
		stages = stages[:1]
	}
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventDealsChanged,
		DealID:    dealID,
		Stages:    stages,
		Timestamp: time.Now(),
	}, 3)
}
