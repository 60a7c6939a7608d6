package model

import "time"

// PublicHoliday is a dated public holiday
type PublicHoliday struct {
	Date time.Time `json:"date" bson:"date"`
	Name string    `json:"name" bson:"name"`
}

// HolidayFilter selects holidays with From <= date < Until, ordered by date
type HolidayFilter struct {
	From  *time.Time
	Until *time.Time
	Limit int64
}
