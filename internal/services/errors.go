package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ===============================
// ERROR TYPES
// ===============================

// ServiceError is the structured error every service operation returns on
// failure. Type is the stable machine-usable kind; StatusCode drives the
// HTTP mapping at the response layer.
type ServiceError struct {
	Type       string         `json:"type"`
	Message    string         `json:"message"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	Cause      error          `json:"-"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetStatusCode returns the HTTP status code for this error.
func (e *ServiceError) GetStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// Error kinds.
const (
	ErrTypeValidation     = "VALIDATION_ERROR"
	ErrTypeNotFound       = "NOT_FOUND"
	ErrTypeForbidden      = "FORBIDDEN"
	ErrTypeConflict       = "CONFLICT"
	ErrTypeUpstream       = "UPSTREAM_ERROR"
	ErrTypeInternal       = "INTERNAL_ERROR"
	ErrTypeAuthentication = "AUTHENTICATION_ERROR"
)

// ===============================
// ERROR CONSTRUCTORS
// ===============================

// NewValidationError creates a validation error for malformed or missing
// input.
func NewValidationError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewForbiddenError creates a forbidden error: the actor is authenticated
// but lacks rights on the resource.
func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewConflictError creates a conflict error for uniqueness violations.
func NewConflictError(message, code string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeConflict,
		Message:    message,
		Code:       code,
		StatusCode: http.StatusConflict,
	}
}

// NewUpstreamError creates an error for blob-store or store-layer failures.
func NewUpstreamError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeUpstream,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewAuthenticationError creates an error for missing or invalid
// credentials.
func NewAuthenticationError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// ===============================
// ERROR UTILITIES
// ===============================

// GetServiceError extracts a ServiceError from err, wrapping unknown errors
// as internal so no raw detail leaks to the response layer.
func GetServiceError(err error) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return &ServiceError{
		Type:       ErrTypeInternal,
		Message:    "An unexpected error occurred",
		StatusCode: http.StatusInternalServerError,
		Cause:      err,
	}
}

// IsErrorType checks whether err carries the given kind.
func IsErrorType(err error, errorType string) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Type == errorType
	}
	return false
}

// IsNotFoundError reports whether err is a not found error.
func IsNotFoundError(err error) bool { return IsErrorType(err, ErrTypeNotFound) }

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool { return IsErrorType(err, ErrTypeValidation) }

// IsForbiddenError reports whether err is a forbidden error.
func IsForbiddenError(err error) bool { return IsErrorType(err, ErrTypeForbidden) }

// IsConflictError reports whether err is a conflict error.
func IsConflictError(err error) bool { return IsErrorType(err, ErrTypeConflict) }

// ===============================
// COMMON ERROR PATTERNS
// ===============================

// EntityNotFoundError creates a standard entity not found error.
func EntityNotFoundError(entityType string) *ServiceError {
	return NewNotFoundError(fmt.Sprintf("%s not found", entityType))
}

// EntityAlreadyExistsError creates a standard uniqueness-conflict error.
func EntityAlreadyExistsError(entityType, field string) *ServiceError {
	return NewConflictError(
		fmt.Sprintf("%s already exists", entityType),
		fmt.Sprintf("DUPLICATE_%s", field),
	)
}
