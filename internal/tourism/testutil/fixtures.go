// Package testutil seeds catalogue collections for tests in other packages
package testutil

import (
	"context"
	"fmt"
	"time"

	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/tourism/adapter/persistence"
	"sarawak-tourism/internal/tourism/domain/model"
)

// Attraction builds an attraction with the given id and categories
func Attraction(id, name string, categories ...string) *model.Attraction {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &model.Attraction{
		ID:          id,
		Name:        name,
		Location:    "Kuching",
		Description: fmt.Sprintf("%s in Sarawak", name),
		Categories:  categories,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Event builds an event starting at start
func Event(id, title, category string, start time.Time) *model.Event {
	end := start.Add(48 * time.Hour)
	return &model.Event{
		ID:           id,
		Title:        title,
		Category:     category,
		StartDate:    &start,
		EndDate:      &end,
		LocationName: "Kuching Waterfront",
		CreatedAt:    start,
		UpdatedAt:    start,
	}
}

// Holiday builds a holiday on date
func Holiday(date time.Time, name string) *model.PublicHoliday {
	return &model.PublicHoliday{Date: date, Name: name}
}

// Seed inserts attractions, events and holidays into store
func Seed(ctx context.Context, store docstore.Store, docs ...interface{}) error {
	for _, d := range docs {
		var collection string
		switch d.(type) {
		case *model.Attraction:
			collection = persistence.AttractionsCollection
		case *model.Event:
			collection = persistence.EventsCollection
		case *model.PublicHoliday:
			collection = persistence.HolidaysCollection
		case *model.VisitorAnalytics:
			collection = persistence.AnalyticsCollection
		default:
			return fmt.Errorf("unsupported fixture %T", d)
		}
		if err := store.Insert(ctx, collection, d); err != nil {
			return err
		}
	}
	return nil
}
