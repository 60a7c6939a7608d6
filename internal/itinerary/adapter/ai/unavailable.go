package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by Unavailable
var ErrNotConfigured = errors.New("ai provider is not configured")

// Unavailable is a Completer used when no API key is set. Every call fails, so
// generation requests surface as upstream errors while the rest of the API serves.
type Unavailable struct{}

func (Unavailable) Complete(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}
