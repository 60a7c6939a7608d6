package model

import "time"

// GuestIdentity is the shared quota identity of unauthenticated callers
const GuestIdentity = "guest"

// Allowed request values
var (
	Interests = []string{"Culture", "Adventure", "Nature", "Foods", "Festivals"}
	Durations = []int{1, 3, 5, 7}
	Budgets   = []string{"low", "medium", "high"}
)

// Itinerary is a generated travel plan. Rows are append-only and double as the
// quota counter for their identity.
type Itinerary struct {
	ID        string    `json:"_id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Itinerary string    `json:"itinerary" bson:"itinerary"`
	Interests []string  `json:"interests" bson:"interests"`
	Duration  int       `json:"duration" bson:"duration"`
	Budget    string    `json:"budget" bson:"budget"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// LimitStatus reports an identity's quota for the current UTC day
type LimitStatus struct {
	DailyLimit     int       `json:"daily_limit"`
	UsedToday      int       `json:"used_today"`
	RemainingToday int       `json:"remaining_today"`
	ResetTime      time.Time `json:"reset_time"`
}

// DayWindow returns the UTC midnight at or before now and the one after it
func DayWindow(now time.Time) (start, reset time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
