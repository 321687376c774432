// Package errors defines the application-level error taxonomy. Business
// outcomes (not found, conflict, invalid input, unauthorized, invalid state)
// are ordinary return values the delivery layer translates; only
// infrastructure faults are unexpected.
package errors

import (
	"net/http"

	"hailer/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Participant-related errors
	ErrParticipantNotFound = NewBaseError(
		http.StatusNotFound,
		"PARTICIPANT_NOT_FOUND",
		"participant not found",
		"",
	)

	ErrNameTaken = NewBaseError(
		http.StatusConflict,
		"NAME_TAKEN",
		"this name is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"name or password is incorrect",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input failed validation",
		"",
	)

	// Driver/order-related errors
	ErrDriverNotFound = NewBaseError(
		http.StatusNotFound,
		"DRIVER_NOT_FOUND",
		"driver not found",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	ErrNoOpenOrder = NewBaseError(
		http.StatusNotFound,
		"NO_OPEN_ORDER",
		"rider has no open order",
		"",
	)

	ErrInvalidOrderState = NewBaseError(
		http.StatusConflict,
		"INVALID_ORDER_STATE",
		"order is not in the required state for this operation",
		"",
	)

	ErrMalformedCoordinate = NewBaseError(
		http.StatusUnprocessableEntity,
		"MALFORMED_COORDINATE",
		"coordinate data could not be parsed",
		"",
	)

	// Authorization-related errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"operation not permitted for this account",
		"",
	)
)

// NewDatabaseExecuteError wraps an underlying store fault as an opaque
// infrastructure failure. The cause is preserved for logging.
func NewDatabaseExecuteError(cause error, details string) error {
	base := NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_EXECUTE_FAILED",
		"storage operation failed",
		details,
	)

	return errors.Wrap(base, cause.Error())
}
