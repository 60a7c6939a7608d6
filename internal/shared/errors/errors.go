package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error types for different domains
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "VALIDATION_ERROR"
	ErrorTypeInfrastructure     ErrorType = "INFRASTRUCTURE_ERROR"
	ErrorTypeAuthentication     ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeNotFound           ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeConflict           ErrorType = "CONFLICT_ERROR"
	ErrorTypeRateLimit          ErrorType = "RATE_LIMIT_ERROR"
	ErrorTypeUpstreamAuth       ErrorType = "UPSTREAM_AUTH_ERROR"
	ErrorTypeUpstreamGeneration ErrorType = "UPSTREAM_GENERATION_ERROR"
	ErrorTypeInternal           ErrorType = "INTERNAL_ERROR"
)

// Common application errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrRateLimited     = errors.New("rate limit exceeded")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	HTTPCode  int                    `json:"-"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
		Details:  make(map[string]interface{}),
	}
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Common error constructors

// NewValidationError creates an InvalidRequest error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewInfrastructureError creates an infrastructure error
func NewInfrastructureError(message string) *AppError {
	return NewAppError(ErrorTypeInfrastructure, message, http.StatusInternalServerError)
}

// NewAuthenticationError creates an Unauthenticated error. The message never says whether a
// session was absent or expired.
func NewAuthenticationError(message string) *AppError {
	return NewAppError(ErrorTypeAuthentication, message, http.StatusUnauthorized)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(ErrorTypeConflict, message, http.StatusConflict)
}

// NewRateLimitError creates a RateLimitExceeded error that resets at resetTime
func NewRateLimitError(message string, resetTime time.Time) *AppError {
	return NewAppError(ErrorTypeRateLimit, message, http.StatusTooManyRequests).
		WithDetail("reset_time", resetTime.UTC())
}

// NewUpstreamAuthError creates an UpstreamAuthError. The broker's detail is kept for
// diagnostics; callers see an unauthorized status.
func NewUpstreamAuthError(message string, detail string) *AppError {
	return NewAppError(ErrorTypeUpstreamAuth, message, http.StatusUnauthorized).
		WithDetail("upstream_detail", detail)
}

// NewUpstreamGenerationError creates an UpstreamGenerationError wrapping the provider failure
func NewUpstreamGenerationError(message string, cause error) *AppError {
	appErr := NewAppError(ErrorTypeUpstreamGeneration, message, http.StatusBadGateway)
	if cause != nil {
		appErr.WithDetail("upstream_detail", cause.Error())
		appErr.WithCause(cause)
	}
	return appErr
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message, http.StatusInternalServerError)
}

// ValidationError represents validation errors for multiple fields
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors represents a collection of validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", ve.Errors[0].Message)
}

// NewValidationErrors creates a new validation errors instance
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}

// Add adds a validation error
func (ve *ValidationErrors) Add(field, message string, value interface{}) *ValidationErrors {
	ve.Errors = append(ve.Errors, ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	})
	return ve
}

// HasErrors returns true if there are validation errors
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts validation errors to an AppError
func (ve *ValidationErrors) ToAppError() *AppError {
	if !ve.HasErrors() {
		return nil
	}

	appErr := NewValidationError(ve.Error())
	appErr.Details["validation_errors"] = ve.Errors
	return appErr
}

// Helper functions for common error scenarios

// WrapError wraps an error with context, leaving AppErrors untouched
func WrapError(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func hasType(err error, t ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type == t
	}
	return false
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return hasType(err, ErrorTypeNotFound) || errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsAuthentication checks if an error is an authentication error
func IsAuthentication(err error) bool {
	return hasType(err, ErrorTypeAuthentication) || errors.Is(err, ErrUnauthenticated)
}

// IsRateLimit checks if an error is a rate limit error
func IsRateLimit(err error) bool {
	return hasType(err, ErrorTypeRateLimit) || errors.Is(err, ErrRateLimited)
}

// IsUpstream checks if an error came from an external service
func IsUpstream(err error) bool {
	return hasType(err, ErrorTypeUpstreamAuth) || hasType(err, ErrorTypeUpstreamGeneration)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return hasType(err, ErrorTypeConflict)
}
