package utils

import (
	"context"
	"testing"

	"sarawak-tourism/internal/shared/contextkeys"

	"github.com/stretchr/testify/assert"
)

func TestGetSetContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithUserID(ctx, "user_1")
	ctx = WithUserEmail(ctx, "user@example.com")
	ctx = WithSessionToken(ctx, "tok1")
	ctx = WithRequestID(ctx, "req1")
	ctx = WithOperation(ctx, "opX")

	userID, err := GetUserIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "user_1", userID)

	email, err := GetUserEmailFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	token, err := GetSessionTokenFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok1", token)

	reqID, err := GetRequestIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "req1", reqID)

	assert.Equal(t, "user_1", GetUserIDOrDefault(ctx, "guest"))
	assert.Equal(t, "opX", ctx.Value(contextkeys.OperationKey))
}

func TestContextUtils_MissingValues(t *testing.T) {
	ctx := context.Background()

	_, err := GetUserIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserIDNotFound)
	_, err = GetUserEmailFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserEmailNotFound)
	_, err = GetSessionTokenFromContext(ctx)
	assert.ErrorIs(t, err, ErrSessionTokenNotFound)
	_, err = GetRequestIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrRequestIDNotFound)

	assert.Equal(t, "guest", GetUserIDOrDefault(ctx, "guest"))
}

func TestContextUtils_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, 42)
	_, err := GetUserIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserIDNotString)
	assert.Equal(t, "guest", GetUserIDOrDefault(ctx, "guest"))
}

func TestGetUserIDOrDefault_EmptyString(t *testing.T) {
	ctx := WithUserID(context.Background(), "")
	assert.Equal(t, "guest", GetUserIDOrDefault(ctx, "guest"))
}
