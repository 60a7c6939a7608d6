package utils

import (
	"context"
	"errors"

	"sarawak-tourism/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound        = errors.New("userID not found in context")
	ErrUserIDNotString       = errors.New("userID in context is not a string")
	ErrUserEmailNotFound     = errors.New("userEmail not found in context")
	ErrUserEmailNotString    = errors.New("userEmail in context is not a string")
	ErrSessionTokenNotFound  = errors.New("sessionToken not found in context")
	ErrSessionTokenNotString = errors.New("sessionToken in context is not a string")
	ErrRequestIDNotFound     = errors.New("requestID not found in context")
	ErrRequestIDNotString    = errors.New("requestID in context is not a string")
)

func getString(ctx context.Context, key interface{}, notFound, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", notFound
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetUserIDFromContext retrieves the user ID from the context.
// It returns the user ID and an error if the user ID is not found or is not a string.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	return getString(ctx, contextkeys.UserIDKey, ErrUserIDNotFound, ErrUserIDNotString)
}

// GetUserEmailFromContext retrieves the user email from the context.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	return getString(ctx, contextkeys.UserEmailKey, ErrUserEmailNotFound, ErrUserEmailNotString)
}

// GetSessionTokenFromContext retrieves the session token that authenticated the request.
func GetSessionTokenFromContext(ctx context.Context) (string, error) {
	return getString(ctx, contextkeys.SessionTokenKey, ErrSessionTokenNotFound, ErrSessionTokenNotString)
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return getString(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// Context builder functions

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithUserEmail adds user email to context
func WithUserEmail(ctx context.Context, userEmail string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, userEmail)
}

// WithSessionToken adds the session token to context
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.SessionTokenKey, token)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithOperation adds operation name to context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// GetUserIDOrDefault retrieves the user ID from context or returns a default value
func GetUserIDOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserIDFromContext(ctx); err == nil && v != "" {
		return v
	}
	return def
}
