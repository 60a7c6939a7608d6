package model

import "time"

// Event is a dated happening such as a festival
type Event struct {
	ID           string     `json:"_id" bson:"_id"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	LocationName string     `json:"location_name,omitempty" bson:"location_name,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Category     string     `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL     string     `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Organizer    string     `json:"organizer,omitempty" bson:"organizer,omitempty"`
	URL          string     `json:"url,omitempty" bson:"url,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// EventFilter selects events; From and To bound start_date inclusively.
// Results are ordered by start_date ascending.
type EventFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	Limit    int64
}
