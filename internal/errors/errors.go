package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a texpulse error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // bad arguments or malformed outline structure
	ErrFileMissing    ErrorCode = "FILE_MISSING"    // a required project artifact could not be read
	ErrNotFound       ErrorCode = "NOT_FOUND"       // no snapshot stored for the requested day
	ErrBaselineDrift  ErrorCode = "BASELINE_DRIFT"  // outline unit absent from the day's baseline
	ErrUnknownCommand ErrorCode = "UNKNOWN_COMMAND" // listener command outside the protocol
	ErrInternal       ErrorCode = "INTERNAL"        // storage or encoding fault
)

// Error is a structured error with a stable code and optional details.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewInvalidRequest creates an error for invalid arguments or inputs.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewFileMissing creates an error for a project artifact that could not be
// opened or read. The underlying cause is preserved for unwrapping.
func NewFileMissing(path string, err error) *Error {
	return &Error{
		Code:    ErrFileMissing,
		Message: fmt.Sprintf("cannot read %s", path),
		Details: map[string]any{"path": path},
		cause:   err,
	}
}

// NewNotFound creates an error for a snapshot day with no stored row.
func NewNotFound(day string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("no snapshot stored for %s", day),
		Details: map[string]any{"day": day},
	}
}

// NewBaselineDrift creates an error for an outline unit that exists in the
// current document but not in the day's baseline snapshot.
func NewBaselineDrift(number string) *Error {
	return &Error{
		Code:    ErrBaselineDrift,
		Message: fmt.Sprintf("unit %s not present in today's baseline", number),
		Details: map[string]any{"number": number},
	}
}

// NewUnknownCommand creates an error for a listener command outside the
// protocol. Callers report it and keep serving.
func NewUnknownCommand(cmd string) *Error {
	return &Error{
		Code:    ErrUnknownCommand,
		Message: fmt.Sprintf("unknown command: %q", cmd),
		Details: map[string]any{"command": cmd},
	}
}

// NewInternal creates an error for unexpected internal failures. The message
// stays generic; the original error is kept in Details for logging.
func NewInternal(err error) *Error {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Message: "an internal error occurred",
		Details: details,
		cause:   err,
	}
}

// Is checks whether err is (or wraps) an Error with the given code.
func Is(err error, code ErrorCode) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}
