package persistence

import (
	"context"
	"errors"
	"fmt"

	"sarawak-tourism/internal/auth/domain/model"
	"sarawak-tourism/internal/auth/domain/repository"
	"sarawak-tourism/internal/shared/docstore"
)

const (
	UsersCollection    = "users"
	SessionsCollection = "user_sessions"
)

// AuthRepository implements repository.AuthRepository on a document store.
// Expired sessions are removed lazily by the use case, so there is no TTL index.
type AuthRepository struct {
	store docstore.Store
}

// NewAuthRepository creates the repository and ensures its indexes
func NewAuthRepository(ctx context.Context, store docstore.Store) (*AuthRepository, error) {
	indexes := []struct {
		collection string
		index      docstore.Index
	}{
		{UsersCollection, docstore.Index{Field: "email", Unique: true}},
		{UsersCollection, docstore.Index{Field: "user_id"}},
		{SessionsCollection, docstore.Index{Field: "session_token", Unique: true}},
	}
	for _, idx := range indexes {
		if err := store.EnsureIndex(ctx, idx.collection, idx.index); err != nil {
			return nil, err
		}
	}

	return &AuthRepository{store: store}, nil
}

// CreateUser inserts a user, returning model.ErrUserExists when the email is taken
func (r *AuthRepository) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.store.Insert(ctx, UsersCollection, user); err != nil {
		if errors.Is(err, docstore.ErrDuplicate) {
			return model.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findUser(ctx, docstore.NewQuery().Eq("email", email))
}

// GetUserByID retrieves a user by internal user id
func (r *AuthRepository) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	return r.findUser(ctx, docstore.NewQuery().Eq("user_id", userID))
}

func (r *AuthRepository) findUser(ctx context.Context, q *docstore.Query) (*model.User, error) {
	var user model.User
	if err := r.store.FindOne(ctx, UsersCollection, q, &user); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// CreateSession inserts a session, returning model.ErrSessionExists for a reused token
func (r *AuthRepository) CreateSession(ctx context.Context, session *model.Session) error {
	if err := r.store.Insert(ctx, SessionsCollection, session); err != nil {
		if errors.Is(err, docstore.ErrDuplicate) {
			return model.ErrSessionExists
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSessionByToken retrieves a session regardless of expiry
func (r *AuthRepository) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	err := r.store.FindOne(ctx, SessionsCollection, docstore.NewQuery().Eq("session_token", token), &session)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

// DeleteSessionByToken deletes the session with token, if any
func (r *AuthRepository) DeleteSessionByToken(ctx context.Context, token string) (bool, error) {
	n, err := r.store.DeleteOne(ctx, SessionsCollection, docstore.NewQuery().Eq("session_token", token))
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return n > 0, nil
}

var _ repository.AuthRepository = (*AuthRepository)(nil)
