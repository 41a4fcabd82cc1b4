package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Custom error types for the application. The pipeline error taxonomy:
// strategy failures are recovered inside the extraction chain and never surfaced
// directly; exhausted extraction and integrity mismatches always are.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrBadRequest          = errors.New("invalid request")
	ErrInternalServer      = errors.New("internal server error")
	ErrValidation          = errors.New("validation error")
	ErrStrategyFailure     = errors.New("extraction strategy failed")
	ErrExtractionExhausted = errors.New("no extraction strategy produced valid content")
	ErrVisualRedaction     = errors.New("visual redaction failed")
	ErrIntegrityMismatch   = errors.New("content integrity verification failed")
	ErrMissingEncryptionKey = errors.New("encryption key not configured")
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers
	Field      string // Field related to the error (for validation errors)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    "An internal server error occurred",
		DevInfo:    devInfo,
	}
}

// NewExtractionExhaustedError creates the terminal error returned when every
// extraction strategy failed the quality gate. Callers must not run redaction
// or analysis on the associated output.
func NewExtractionExhaustedError(fileName string) *AppError {
	return &AppError{
		Err:        ErrExtractionExhausted,
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "Document content could not be extracted",
		DevInfo:    fmt.Sprintf("all extraction strategies exhausted for %q", fileName),
	}
}

// NewIntegrityMismatchError creates the non-recoverable error signaled when a
// decrypted payload's hash disagrees with its stored digest. This must never be
// downgraded to a warning: access to the affected document is blocked.
func NewIntegrityMismatchError(devInfo string) *AppError {
	return &AppError{
		Err:        ErrIntegrityMismatch,
		StatusCode: http.StatusConflict,
		Message:    "Document failed integrity verification and cannot be returned",
		DevInfo:    devInfo,
	}
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	// If it's already an AppError, return it
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrExtractionExhausted):
		return NewExtractionExhaustedError("")
	case errors.Is(err, ErrIntegrityMismatch):
		return NewIntegrityMismatchError(err.Error())
	}

	// Default to internal server error
	return NewInternalServerError(err)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrValidation)
	}
	return errors.Is(err, ErrValidation)
}

// IsIntegrityMismatch checks if an error is an integrity verification failure.
func IsIntegrityMismatch(err error) bool {
	return errors.Is(err, ErrIntegrityMismatch)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
