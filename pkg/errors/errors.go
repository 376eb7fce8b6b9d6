package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrUnavailable  = errors.New("dependency unavailable")
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidRangeFilter creates a 400 error for a malformed numeric range filter.
// A range filter needs exactly a lower and an upper bound, in that order.
func InvalidRangeFilter(field string, reason string) *AppError {
	return &AppError{
		Code:    "INVALID_RANGE_FILTER",
		Message: fmt.Sprintf("range filter %q %s", field, reason),
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// UploadFailed creates a 502 error for an image upload failure.
// Nothing has been persisted when this error is returned.
func UploadFailed(err error) *AppError {
	return &AppError{
		Code:    "UPLOAD_FAILED",
		Message: "image upload failed",
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// PersistenceFailed creates a 500 error for a record store write failure.
func PersistenceFailed(err error) *AppError {
	return &AppError{
		Code:    "PERSISTENCE_FAILED",
		Message: "failed to persist record",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// IndexQueryFailed creates a 500 error for a search index query failure.
// The underlying cause is kept for logs and never rendered to the client.
func IndexQueryFailed(err error) *AppError {
	return &AppError{
		Code:    "INDEX_QUERY_FAILED",
		Message: "search is temporarily unavailable",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
