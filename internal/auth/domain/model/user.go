package model

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session token already exists")
)

// UserIDPrefix prefixes every internal user id
const UserIDPrefix = "user_"

// User is created on the first successful broker exchange for an email.
// Name and picture are kept from that first exchange.
type User struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name" bson:"name"`
	Picture   string    `json:"picture,omitempty" bson:"picture,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ExternalIdentity is what the identity broker returns for a valid external session id
type ExternalIdentity struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}
