package model

import "time"

// Session maps a broker-issued token to a user until ExpiresAt
type Session struct {
	UserID       string    `json:"user_id" bson:"user_id"`
	SessionToken string    `json:"session_token" bson:"session_token"`
	ExpiresAt    time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// IsExpired reports whether the session is no longer valid at now.
// A session expiring exactly at now is expired.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
