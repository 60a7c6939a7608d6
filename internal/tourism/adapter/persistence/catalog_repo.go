package persistence

import (
	"context"
	"errors"
	"fmt"

	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/tourism/domain/model"
	"sarawak-tourism/internal/tourism/domain/repository"
)

const (
	AttractionsCollection = "attractions"
	EventsCollection      = "events"
	AnalyticsCollection   = "visitor_analytics"
	HolidaysCollection    = "public_holidays"
	FavoritesCollection   = "favorites"
)

// AttractionRepository reads the attractions collection
type AttractionRepository struct {
	store docstore.Store
}

// NewAttractionRepository creates an attraction repository
func NewAttractionRepository(store docstore.Store) *AttractionRepository {
	return &AttractionRepository{store: store}
}

func (r *AttractionRepository) Find(ctx context.Context, filter model.AttractionFilter) ([]*model.Attraction, error) {
	q := docstore.NewQuery().WithLimit(filter.Limit)
	switch len(filter.Categories) {
	case 0:
	case 1:
		q.Eq("categories", filter.Categories[0])
	default:
		q.Where("categories", docstore.OpIn, filter.Categories)
	}
	if filter.Location != "" {
		q.Where("location", docstore.OpContainsFold, filter.Location)
	}
	if len(filter.IDs) > 0 {
		q.Where("_id", docstore.OpIn, filter.IDs)
	}

	var out []*model.Attraction
	if err := r.store.Find(ctx, AttractionsCollection, q, &out); err != nil {
		return nil, fmt.Errorf("find attractions: %w", err)
	}
	return out, nil
}

func (r *AttractionRepository) GetByID(ctx context.Context, id string) (*model.Attraction, error) {
	var a model.Attraction
	if err := getByID(ctx, r.store, AttractionsCollection, id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttractionRepository) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, AttractionsCollection, nil)
}

// EventRepository reads the events collection
type EventRepository struct {
	store docstore.Store
}

// NewEventRepository creates an event repository
func NewEventRepository(store docstore.Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) Find(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	q := docstore.NewQuery().OrderBy("start_date", false).WithLimit(filter.Limit)
	if filter.Category != "" {
		q.Eq("category", filter.Category)
	}
	if filter.From != nil {
		q.Where("start_date", docstore.OpGte, *filter.From)
	}
	if filter.To != nil {
		q.Where("start_date", docstore.OpLte, *filter.To)
	}

	var out []*model.Event
	if err := r.store.Find(ctx, EventsCollection, q, &out); err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := getByID(ctx, r.store, EventsCollection, id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, EventsCollection, nil)
}

// AnalyticsRepository reads the visitor_analytics collection
type AnalyticsRepository struct {
	store docstore.Store
}

// NewAnalyticsRepository creates an analytics repository
func NewAnalyticsRepository(store docstore.Store) *AnalyticsRepository {
	return &AnalyticsRepository{store: store}
}

func (r *AnalyticsRepository) Find(ctx context.Context, filter model.AnalyticsFilter) ([]*model.VisitorAnalytics, error) {
	q := docstore.NewQuery().WithLimit(filter.Limit)
	if filter.Year != 0 {
		q.Eq("year", filter.Year)
	}
	if filter.Month != 0 {
		q.Eq("month", filter.Month)
	}
	if filter.Country != "" {
		q.Eq("country", filter.Country)
	}
	if filter.VisitorType != "" {
		q.Eq("visitor_type", filter.VisitorType)
	}

	var out []*model.VisitorAnalytics
	if err := r.store.Find(ctx, AnalyticsCollection, q, &out); err != nil {
		return nil, fmt.Errorf("find analytics: %w", err)
	}
	return out, nil
}

// HolidayRepository reads the public_holidays collection
type HolidayRepository struct {
	store docstore.Store
}

// NewHolidayRepository creates a holiday repository
func NewHolidayRepository(store docstore.Store) *HolidayRepository {
	return &HolidayRepository{store: store}
}

func (r *HolidayRepository) Find(ctx context.Context, filter model.HolidayFilter) ([]*model.PublicHoliday, error) {
	q := docstore.NewQuery().OrderBy("date", false).WithLimit(filter.Limit)
	if filter.From != nil {
		q.Where("date", docstore.OpGte, *filter.From)
	}
	if filter.Until != nil {
		q.Where("date", docstore.OpLt, *filter.Until)
	}

	var out []*model.PublicHoliday
	if err := r.store.Find(ctx, HolidaysCollection, q, &out); err != nil {
		return nil, fmt.Errorf("find holidays: %w", err)
	}
	return out, nil
}

func getByID(ctx context.Context, store docstore.Store, collection, id string, dest interface{}) error {
	if err := store.FindOne(ctx, collection, docstore.ByID(id), dest); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("get %s: %w", collection, err)
	}
	return nil
}

var (
	_ repository.AttractionRepository = (*AttractionRepository)(nil)
	_ repository.EventRepository      = (*EventRepository)(nil)
	_ repository.AnalyticsRepository  = (*AnalyticsRepository)(nil)
	_ repository.HolidayRepository    = (*HolidayRepository)(nil)
)
