package domain

import "fmt"

// ErrorCode classifies application errors for transport-level mapping.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "validation"
	CodeNotFound     ErrorCode = "not_found"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeForbidden    ErrorCode = "forbidden"
	CodeConflict     ErrorCode = "conflict"
	CodeUnavailable  ErrorCode = "unavailable"
	CodeInternal     ErrorCode = "internal"
)

// AppError is a typed application error carried across layer boundaries.
// Handlers map the code to an HTTP status; everything below them only
// deals in codes.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError creates an error for malformed or out-of-range input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewUnauthorizedError creates an error for missing or invalid credentials.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError creates an error for an authenticated but disallowed action.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewConflictError creates an error for a state conflict (duplicate, stale write).
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewUnavailableError creates an error for an unreachable upstream dependency.
func NewUnavailableError(message string, cause error) *AppError {
	return &AppError{Code: CodeUnavailable, Message: message, Err: cause}
}

// NewInternalError creates an error for a failure in our own infrastructure.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: cause}
}
