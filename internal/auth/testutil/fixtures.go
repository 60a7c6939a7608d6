package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sarawak-tourism/internal/auth/domain/model"
	apperrors "sarawak-tourism/internal/shared/errors"
)

// UserFixture provides test data for User model
type UserFixture struct{}

// NewUserFixture creates a new UserFixture instance
func NewUserFixture() *UserFixture {
	return &UserFixture{}
}

// ValidUser returns a valid user for testing
func (f *UserFixture) ValidUser() *model.User {
	return &model.User{
		UserID:    "user_0123456789ab",
		Email:     "test@example.com",
		Name:      "Test User",
		Picture:   "https://example.com/avatar.png",
		CreatedAt: time.Now().UTC(),
	}
}

// UserWithEmail returns a user with specific email
func (f *UserFixture) UserWithEmail(email string) *model.User {
	user := f.ValidUser()
	user.UserID = "user_" + fmt.Sprintf("%012x", len(email))
	user.Email = email
	return user
}

// SessionFixture provides test data for Session model
type SessionFixture struct{}

// NewSessionFixture creates a new SessionFixture instance
func NewSessionFixture() *SessionFixture {
	return &SessionFixture{}
}

// SessionForUser returns a session valid for a week
func (f *SessionFixture) SessionForUser(userID, token string) *model.Session {
	now := time.Now().UTC()
	return &model.Session{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    now.Add(7 * 24 * time.Hour),
		CreatedAt:    now,
	}
}

// ExpiredSession returns a session that expired an hour ago
func (f *SessionFixture) ExpiredSession(userID, token string) *model.Session {
	now := time.Now().UTC()
	return &model.Session{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    now.Add(-1 * time.Hour),
		CreatedAt:    now.Add(-7*24*time.Hour - time.Hour),
	}
}

// FakeBroker is an in-memory identity broker keyed by external session id
type FakeBroker struct {
	mu         sync.Mutex
	identities map[string]*model.ExternalIdentity
	calls      int
}

// NewFakeBroker creates a broker that knows no sessions
func NewFakeBroker() *FakeBroker {
	return &FakeBroker{identities: make(map[string]*model.ExternalIdentity)}
}

// Register makes externalID resolve to an identity with email and token
func (b *FakeBroker) Register(externalID, email, name, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.identities[externalID] = &model.ExternalIdentity{
		Email:        email,
		Name:         name,
		SessionToken: token,
	}
}

// Calls returns how many exchanges were attempted
func (b *FakeBroker) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// FetchIdentity implements repository.IdentityBroker
func (b *FakeBroker) FetchIdentity(_ context.Context, externalSessionID string) (*model.ExternalIdentity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++

	identity, ok := b.identities[externalSessionID]
	if !ok {
		return nil, apperrors.NewUpstreamAuthError("failed to create session", "identity broker returned 404: session not found")
	}
	copied := *identity
	return &copied, nil
}
