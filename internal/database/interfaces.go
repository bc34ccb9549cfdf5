package database

import (
	"context"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// DealReader defines read operations for deals.
type DealReader interface {
	List(ctx context.Context, params models.ListParams) ([]*models.Deal, error)
	GetByID(ctx context.Context, id int) (*models.Deal, error)
	CountByStage(ctx context.Context, stage string) (int, error)
}

// DealWriter defines write operations for deals.
type DealWriter interface {
	Create(ctx context.Context, d *models.Deal) (*models.Deal, error)
	Append(ctx context.Context, d *models.Deal) (*models.Deal, error)
	Update(ctx context.Context, params models.UpdateParams) (*models.Deal, error)
	Delete(ctx context.Context, id int) (*models.Deal, error)
}

// DataStore defines the unified interface for all data operations.
// Consumers that only need a slice of it (the renumber engine needs List and
// Update) should depend on the smaller interface.
type DataStore interface {
	DealReader
	DealWriter
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
