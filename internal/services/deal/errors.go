package deal

import (
	"errors"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// Deal-related errors
var (
	// Validation errors
	ErrEmptyName     = errors.New("deal name cannot be empty")
	ErrNameTooLong   = errors.New("deal name cannot exceed 255 characters")
	ErrInvalidDealID = errors.New("invalid deal ID")
	ErrInvalidIndex  = errors.New("invalid index: must be >= 0")
	ErrInvalidAmount = errors.New("invalid amount: must be >= 0")
	ErrInvalidPage   = errors.New("invalid pagination: page and per-page must be >= 0")

	// Business logic errors, shared with the store so errors.Is works across layers
	ErrUnknownStage = models.ErrUnknownStage
	ErrDealNotFound = models.ErrDealNotFound
)
