package renumber

import "errors"

var (
	// ErrFetchFailed wraps a failed stage read; nothing was written
	ErrFetchFailed = errors.New("failed to fetch stage")

	// ErrWriteFailed wraps a failed index write; other writes of the batch may have landed
	ErrWriteFailed = errors.New("failed to write deal index")

	// ErrNilSource is returned when no source deal is given
	ErrNilSource = errors.New("source deal is required")
)
