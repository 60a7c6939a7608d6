package model

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by lookups by id that match nothing
	ErrNotFound = errors.New("not found")
	// ErrFavoriteNotFound is returned when a (user, attraction) pair is not a favorite
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// Favorite marks an attraction for a user. At most one exists per pair.
type Favorite struct {
	ID           string    `json:"_id" bson:"_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	AttractionID string    `json:"attraction_id" bson:"attraction_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
