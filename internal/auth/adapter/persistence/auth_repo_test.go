package persistence_test

import (
	"context"
	"testing"
	"time"

	"sarawak-tourism/internal/auth/adapter/persistence"
	"sarawak-tourism/internal/auth/domain/model"
	"sarawak-tourism/internal/shared/docstore"

	"github.com/stretchr/testify/suite"
)

type AuthRepositoryTestSuite struct {
	suite.Suite
	repo *persistence.AuthRepository
	ctx  context.Context
	now  time.Time
}

func (s *AuthRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo, err := persistence.NewAuthRepository(s.ctx, docstore.NewMemoryStore())
	s.Require().NoError(err)
	s.repo = repo
}

func (s *AuthRepositoryTestSuite) TestCreateAndGetUser() {
	user := &model.User{UserID: "user_0123456789ab", Email: "ana@example.com", Name: "Ana", CreatedAt: s.now}
	s.Require().NoError(s.repo.CreateUser(s.ctx, user))

	byEmail, err := s.repo.GetUserByEmail(s.ctx, "ana@example.com")
	s.Require().NoError(err)
	s.Equal(user.UserID, byEmail.UserID)
	s.True(byEmail.CreatedAt.Equal(s.now))

	byID, err := s.repo.GetUserByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Equal("Ana", byID.Name)
}

func (s *AuthRepositoryTestSuite) TestCreateUser_DuplicateEmail() {
	s.Require().NoError(s.repo.CreateUser(s.ctx, &model.User{UserID: "user_a", Email: "dup@example.com"}))

	err := s.repo.CreateUser(s.ctx, &model.User{UserID: "user_b", Email: "dup@example.com"})
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *AuthRepositoryTestSuite) TestGetUser_NotFound() {
	_, err := s.repo.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.repo.GetUserByID(s.ctx, "user_missing")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *AuthRepositoryTestSuite) TestSessionLifecycle() {
	session := &model.Session{
		UserID:       "user_a",
		SessionToken: "tok1",
		ExpiresAt:    s.now.Add(7 * 24 * time.Hour),
		CreatedAt:    s.now,
	}
	s.Require().NoError(s.repo.CreateSession(s.ctx, session))

	got, err := s.repo.GetSessionByToken(s.ctx, "tok1")
	s.Require().NoError(err)
	s.Equal("user_a", got.UserID)
	s.True(got.ExpiresAt.Equal(session.ExpiresAt))

	deleted, err := s.repo.DeleteSessionByToken(s.ctx, "tok1")
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.repo.GetSessionByToken(s.ctx, "tok1")
	s.ErrorIs(err, model.ErrSessionNotFound)

	deleted, err = s.repo.DeleteSessionByToken(s.ctx, "tok1")
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *AuthRepositoryTestSuite) TestCreateSession_DuplicateToken() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &model.Session{UserID: "user_a", SessionToken: "tok1"}))

	err := s.repo.CreateSession(s.ctx, &model.Session{UserID: "user_b", SessionToken: "tok1"})
	s.ErrorIs(err, model.ErrSessionExists)
}

func (s *AuthRepositoryTestSuite) TestMultipleSessionsPerUser() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &model.Session{UserID: "user_a", SessionToken: "tok1"}))
	s.Require().NoError(s.repo.CreateSession(s.ctx, &model.Session{UserID: "user_a", SessionToken: "tok2"}))

	first, err := s.repo.GetSessionByToken(s.ctx, "tok1")
	s.Require().NoError(err)
	second, err := s.repo.GetSessionByToken(s.ctx, "tok2")
	s.Require().NoError(err)
	s.Equal(first.UserID, second.UserID)
}

func TestAuthRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AuthRepositoryTestSuite))
}
