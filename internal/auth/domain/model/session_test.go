package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsExpired(t *testing.T) {
	expires := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: expires}

	assert.False(t, s.IsExpired(expires.Add(-time.Second)))
	assert.True(t, s.IsExpired(expires))
	assert.True(t, s.IsExpired(expires.Add(time.Second)))
}
