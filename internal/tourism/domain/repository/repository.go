package repository

import (
	"context"

	"sarawak-tourism/internal/tourism/domain/model"
)

// AttractionRepository reads attractions
type AttractionRepository interface {
	Find(ctx context.Context, filter model.AttractionFilter) ([]*model.Attraction, error)
	GetByID(ctx context.Context, id string) (*model.Attraction, error)
	Count(ctx context.Context) (int64, error)
}

// EventRepository reads events
type EventRepository interface {
	Find(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Count(ctx context.Context) (int64, error)
}

// AnalyticsRepository reads visitor analytics
type AnalyticsRepository interface {
	Find(ctx context.Context, filter model.AnalyticsFilter) ([]*model.VisitorAnalytics, error)
}

// HolidayRepository reads public holidays
type HolidayRepository interface {
	Find(ctx context.Context, filter model.HolidayFilter) ([]*model.PublicHoliday, error)
}

// FavoriteRepository persists favorites
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	Get(ctx context.Context, userID, attractionID string) (*model.Favorite, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]*model.Favorite, error)
	// Delete removes one favorite for the pair, returning model.ErrFavoriteNotFound if none
	Delete(ctx context.Context, userID, attractionID string) error
}
