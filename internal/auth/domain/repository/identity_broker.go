package repository

import (
	"context"

	"sarawak-tourism/internal/auth/domain/model"
)

// IdentityBroker exchanges an external session id for the caller's identity
type IdentityBroker interface {
	FetchIdentity(ctx context.Context, externalSessionID string) (*model.ExternalIdentity, error)
}
