package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"sarawak-tourism/internal/auth/config"
	"sarawak-tourism/internal/auth/domain/model"
	"sarawak-tourism/internal/auth/domain/repository"
	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/metrics"

	"github.com/google/uuid"
)

const component = "auth_usecase"

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	CreateSession(ctx context.Context, externalSessionID string) (*SessionResponse, error)
	ResolveSession(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

// SessionResponse is returned by CreateSession. The token is also set as a cookie by
// the HTTP layer; it is in the body for clients that cannot use cookies.
type SessionResponse struct {
	User         *model.User `json:"user"`
	SessionToken string      `json:"session_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// AuthUsecase implements the authentication logic.
type AuthUsecase struct {
	repo       repository.AuthRepository
	broker     repository.IdentityBroker
	sessionTTL time.Duration
	logger     logger.Logger
	metrics    metrics.Recorder
	now        func() time.Time
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	repo repository.AuthRepository,
	broker repository.IdentityBroker,
	cfg *config.Config,
	log logger.Logger,
	rec metrics.Recorder,
) *AuthUsecase {
	return &AuthUsecase{
		repo:       repo,
		broker:     broker,
		sessionTTL: cfg.SessionTTL,
		logger:     log.WithComponent(component),
		metrics:    rec,
		now:        time.Now,
	}
}

// WithClock replaces the time source
func (uc *AuthUsecase) WithClock(now func() time.Time) *AuthUsecase {
	uc.now = now
	return uc
}

// NewUserID returns "user_" followed by 12 random hex characters.
// Collisions are not checked.
func NewUserID() string {
	return model.UserIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func unauthenticated() *apperrors.AppError {
	return apperrors.NewAuthenticationError("Not authenticated").WithComponent(component)
}

// CreateSession exchanges an external session id with the identity broker, creates the
// user on first sight of its email and stores the broker-issued token for SessionTTL.
func (uc *AuthUsecase) CreateSession(ctx context.Context, externalSessionID string) (*SessionResponse, error) {
	externalSessionID = strings.TrimSpace(externalSessionID)
	if externalSessionID == "" {
		return nil, apperrors.NewValidationError("session id is required").WithComponent(component)
	}

	identity, err := uc.broker.FetchIdentity(ctx, externalSessionID)
	if err != nil {
		if apperrors.IsUpstream(err) {
			return nil, err
		}
		return nil, apperrors.NewUpstreamAuthError("failed to create session", err.Error()).WithComponent(component)
	}

	now := uc.now().UTC()
	user, err := uc.findOrCreateUser(ctx, identity, now)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		UserID:       user.UserID,
		SessionToken: identity.SessionToken,
		ExpiresAt:    now.Add(uc.sessionTTL),
		CreatedAt:    now,
	}
	if err := uc.storeSession(ctx, session); err != nil {
		return nil, err
	}

	uc.metrics.RecordSessionCreated()
	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"user_id":    user.UserID,
		"expires_at": session.ExpiresAt,
	}).Info("Session created")

	return &SessionResponse{
		User:         user,
		SessionToken: session.SessionToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// findOrCreateUser returns the stored user for the identity's email. Name and picture
// are only written on creation.
func (uc *AuthUsecase) findOrCreateUser(ctx context.Context, identity *model.ExternalIdentity, now time.Time) (*model.User, error) {
	user, err := uc.repo.GetUserByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, apperrors.WrapError(err, "failed to look up user").WithComponent(component)
	}

	user = &model.User{
		UserID:    NewUserID(),
		Email:     identity.Email,
		Name:      identity.Name,
		Picture:   identity.Picture,
		CreatedAt: now,
	}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			// A concurrent first login for the same email won.
			return uc.repo.GetUserByEmail(ctx, identity.Email)
		}
		return nil, apperrors.WrapError(err, "failed to create user").WithComponent(component)
	}

	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{"user_id": user.UserID}).Info("User created")
	return user, nil
}

// storeSession persists session. A token the broker issued before replaces the old row.
func (uc *AuthUsecase) storeSession(ctx context.Context, session *model.Session) error {
	err := uc.repo.CreateSession(ctx, session)
	if errors.Is(err, model.ErrSessionExists) {
		if _, err = uc.repo.DeleteSessionByToken(ctx, session.SessionToken); err == nil {
			err = uc.repo.CreateSession(ctx, session)
		}
	}
	if err != nil {
		return apperrors.WrapError(err, "failed to store session").WithComponent(component)
	}
	return nil
}

// ResolveSession returns the user owning token. Missing, expired and orphaned sessions
// all yield the same Unauthenticated error; expired ones are deleted on the way.
func (uc *AuthUsecase) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, unauthenticated()
	}

	session, err := uc.repo.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, unauthenticated()
		}
		return nil, apperrors.WrapError(err, "failed to look up session").WithComponent(component)
	}

	if session.IsExpired(uc.now()) {
		if _, err := uc.repo.DeleteSessionByToken(ctx, token); err != nil {
			uc.logger.WithContext(ctx).WithFields(map[string]interface{}{"error": err.Error()}).Warn("Failed to evict expired session")
		} else {
			uc.metrics.RecordSessionEvicted()
		}
		return nil, unauthenticated()
	}

	user, err := uc.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			uc.logger.WithContext(ctx).WithFields(map[string]interface{}{"user_id": session.UserID}).Error("Session references a missing user")
			return nil, unauthenticated()
		}
		return nil, apperrors.WrapError(err, "failed to look up user").WithComponent(component)
	}
	return user, nil
}

// Logout deletes the session for token. Unknown tokens are not an error.
func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := uc.repo.DeleteSessionByToken(ctx, token); err != nil {
		return apperrors.WrapError(err, "failed to delete session").WithComponent(component)
	}
	return nil
}

var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
