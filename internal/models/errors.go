package models

import "errors"

// Domain-specific errors for board operations
var (
	// ErrDealNotFound indicates that no deal has the requested ID
	ErrDealNotFound = errors.New("deal not found")

	// ErrUnknownStage indicates a stage value that is not part of the configured pipeline
	ErrUnknownStage = errors.New("unknown stage")
)
