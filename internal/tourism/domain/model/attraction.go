package model

import "time"

// Attraction is reference data loaded by the import process
type Attraction struct {
	ID          string    `json:"_id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Categories  []string  `json:"categories" bson:"categories"`
	Latitude    *float64  `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty" bson:"longitude,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// AttractionFilter selects attractions. Empty fields do not constrain.
type AttractionFilter struct {
	// Categories matches attractions tagged with any of them
	Categories []string
	// Location is a case-insensitive substring of the location
	Location string
	IDs      []string
	Limit    int64
}
