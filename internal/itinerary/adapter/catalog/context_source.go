// Package catalog reads prompt context from the tourism collections through the
// shared read-through cache.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sarawak-tourism/internal/itinerary/domain/repository"
	"sarawak-tourism/internal/shared/cache"
	tourismmodel "sarawak-tourism/internal/tourism/domain/model"
	tourismrepo "sarawak-tourism/internal/tourism/domain/repository"
)

const keyPrefix = "itinerary:context:"

// Source implements repository.ContextSource
type Source struct {
	attractions tourismrepo.AttractionRepository
	events      tourismrepo.EventRepository
	holidays    tourismrepo.HolidayRepository
	cache       cache.Cache
	ttl         time.Duration
}

// NewSource creates a context source. Use cache.NewNoop() to disable caching.
func NewSource(
	attractions tourismrepo.AttractionRepository,
	events tourismrepo.EventRepository,
	holidays tourismrepo.HolidayRepository,
	c cache.Cache,
	ttl time.Duration,
) *Source {
	return &Source{
		attractions: attractions,
		events:      events,
		holidays:    holidays,
		cache:       c,
		ttl:         ttl,
	}
}

func (s *Source) Attractions(ctx context.Context, interests []string, limit int64) ([]repository.Attraction, error) {
	sorted := append([]string(nil), interests...)
	sort.Strings(sorted)
	key := fmt.Sprintf("%sattractions:%s:%d", keyPrefix, strings.Join(sorted, ","), limit)

	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]repository.Attraction, error) {
		found, err := s.attractions.Find(ctx, tourismmodel.AttractionFilter{Categories: sorted, Limit: limit})
		if err != nil {
			return nil, err
		}
		out := make([]repository.Attraction, 0, len(found))
		for _, a := range found {
			out = append(out, repository.Attraction{
				Name:        a.Name,
				Location:    a.Location,
				Description: a.Description,
				Categories:  a.Categories,
			})
		}
		return out, nil
	})
}

// UpcomingEvents keys the cache by day so entries roll over at midnight
func (s *Source) UpcomingEvents(ctx context.Context, from time.Time, limit int64) ([]repository.Event, error) {
	key := fmt.Sprintf("%sevents:%s:%d", keyPrefix, from.UTC().Format("2006-01-02"), limit)

	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]repository.Event, error) {
		found, err := s.events.Find(ctx, tourismmodel.EventFilter{From: &from, Limit: limit})
		if err != nil {
			return nil, err
		}
		out := make([]repository.Event, 0, len(found))
		for _, e := range found {
			out = append(out, repository.Event{
				Title:        e.Title,
				Description:  e.Description,
				LocationName: e.LocationName,
				StartDate:    e.StartDate,
				EndDate:      e.EndDate,
			})
		}
		return out, nil
	})
}

func (s *Source) UpcomingHolidays(ctx context.Context, from time.Time, limit int64) ([]repository.Holiday, error) {
	key := fmt.Sprintf("%sholidays:%s:%d", keyPrefix, from.UTC().Format("2006-01-02"), limit)

	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]repository.Holiday, error) {
		found, err := s.holidays.Find(ctx, tourismmodel.HolidayFilter{From: &from, Limit: limit})
		if err != nil {
			return nil, err
		}
		out := make([]repository.Holiday, 0, len(found))
		for _, h := range found {
			out = append(out, repository.Holiday{Name: h.Name, Date: h.Date})
		}
		return out, nil
	})
}

var _ repository.ContextSource = (*Source)(nil)
