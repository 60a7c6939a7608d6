package repository

import (
	"context"
	"time"

	"sarawak-tourism/internal/itinerary/domain/model"
)

// ItineraryRepository persists generated itineraries
type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *model.Itinerary) error
	// CountSince counts the identity's itineraries created at or after since
	CountSince(ctx context.Context, userID string, since time.Time) (int64, error)
	// ListByUser returns the identity's itineraries, newest first
	ListByUser(ctx context.Context, userID string, limit int64) ([]*model.Itinerary, error)
}

// Completer is the external text-generation service
type Completer interface {
	Complete(ctx context.Context, sessionID, prompt string) (string, error)
}

// Attraction is the slice of an attraction used in prompts
type Attraction struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// Event is the slice of an event used in prompts
type Event struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	LocationName string     `json:"location_name"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// Holiday is a public holiday used in prompts
type Holiday struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// ContextSource supplies reference data for prompts
type ContextSource interface {
	// Attractions returns attractions tagged with any of interests, or any attraction
	// when interests is empty
	Attractions(ctx context.Context, interests []string, limit int64) ([]Attraction, error)
	// UpcomingEvents returns events starting at or after from, earliest first
	UpcomingEvents(ctx context.Context, from time.Time, limit int64) ([]Event, error)
	// UpcomingHolidays returns holidays on or after from, earliest first
	UpcomingHolidays(ctx context.Context, from time.Time, limit int64) ([]Holiday, error)
}
