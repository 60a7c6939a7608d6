package repository

import (
	"context"

	"sarawak-tourism/internal/auth/domain/model"
)

// AuthRepository defines the interface for user and session persistence
type AuthRepository interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)

	// Session operations
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionByToken(ctx context.Context, token string) (*model.Session, error)
	// DeleteSessionByToken reports whether a session was deleted
	DeleteSessionByToken(ctx context.Context, token string) (bool, error)
}
