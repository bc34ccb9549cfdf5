package events

import (
	"errors"
	"os"
	"syscall"
)

var (
	// ErrNotConnected is returned when writing before Connect succeeded
	ErrNotConnected = errors.New("not connected to daemon")

	// ErrQueueFull is returned by SendEvent when the outgoing queue is saturated
	ErrQueueFull = errors.New("event queue full")

	// ErrClientClosed is returned by SendEvent after Close
	ErrClientClosed = errors.New("event client closed")
)

// ErrorCode represents daemon-related error types.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError explains why the daemon could not be reached and what to do about it
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// ClassifyDaemonError maps a dial error to a DaemonError
func ClassifyDaemonError(err error) *DaemonError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return &DaemonError{Code: ErrSocketNotFound, Message: "Socket file not found", Hint: "Start it with: dealflow daemon"}
	case errors.Is(err, os.ErrPermission):
		return &DaemonError{Code: ErrSocketPermission, Message: "Permission denied", Hint: "Check ~/.dealflow/ permissions: chmod 700 ~/.dealflow/"}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &DaemonError{Code: ErrConnectionRefused, Message: "Connection refused", Hint: "The daemon may have crashed, restart it with: dealflow daemon"}
	default:
		return &DaemonError{Code: ErrDaemonNotRunning, Message: "Daemon not running", Hint: "Start it with: dealflow daemon"}
	}
}
