package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/tourism/config"
	"sarawak-tourism/internal/tourism/domain/model"
	"sarawak-tourism/internal/tourism/domain/repository"
)

const component = "tourism_usecase"

// CatalogUsecaseInterface serves read-only queries over the reference collections
type CatalogUsecaseInterface interface {
	ListAttractions(ctx context.Context, q AttractionQuery) ([]*model.Attraction, error)
	GetAttraction(ctx context.Context, id string) (*model.Attraction, error)
	ListEvents(ctx context.Context, q EventQuery) ([]*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListAnalytics(ctx context.Context, q AnalyticsQuery) ([]*model.VisitorAnalytics, error)
	ListHolidays(ctx context.Context, q HolidayQuery) ([]*model.PublicHoliday, error)
}

// AttractionQuery filters attractions. A zero Limit selects the default.
type AttractionQuery struct {
	Category string
	Location string
	Limit    int64
}

// EventQuery filters events by category and start_date bounds
type EventQuery struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int64
}

// AnalyticsQuery filters analytics rows; zero values match everything
type AnalyticsQuery struct {
	Year        int
	Month       int
	Country     string
	VisitorType string
}

// HolidayQuery filters holidays by calendar year; zero matches every year
type HolidayQuery struct {
	Year int
}

// CatalogUsecase implements CatalogUsecaseInterface
type CatalogUsecase struct {
	attractions repository.AttractionRepository
	events      repository.EventRepository
	analytics   repository.AnalyticsRepository
	holidays    repository.HolidayRepository
	cfg         *config.Config
	logger      logger.Logger
}

// NewCatalogUsecase creates a catalogue use case
func NewCatalogUsecase(
	attractions repository.AttractionRepository,
	events repository.EventRepository,
	analytics repository.AnalyticsRepository,
	holidays repository.HolidayRepository,
	cfg *config.Config,
	log logger.Logger,
) *CatalogUsecase {
	return &CatalogUsecase{
		attractions: attractions,
		events:      events,
		analytics:   analytics,
		holidays:    holidays,
		cfg:         cfg,
		logger:      log.WithComponent(component),
	}
}

func (uc *CatalogUsecase) ListAttractions(ctx context.Context, q AttractionQuery) ([]*model.Attraction, error) {
	limit, err := resolveLimit(q.Limit, uc.cfg.AttractionsDefaultLimit, uc.cfg.AttractionsMaxLimit)
	if err != nil {
		return nil, err
	}

	filter := model.AttractionFilter{Location: q.Location, Limit: limit}
	if q.Category != "" {
		filter.Categories = []string{q.Category}
	}

	out, err := uc.attractions.Find(ctx, filter)
	if err != nil {
		return nil, uc.storeError(ctx, err, "list attractions")
	}
	return nonNil(out), nil
}

func (uc *CatalogUsecase) GetAttraction(ctx context.Context, id string) (*model.Attraction, error) {
	a, err := uc.attractions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Attraction").WithComponent(component)
		}
		return nil, uc.storeError(ctx, err, "get attraction")
	}
	return a, nil
}

func (uc *CatalogUsecase) ListEvents(ctx context.Context, q EventQuery) ([]*model.Event, error) {
	limit, err := resolveLimit(q.Limit, uc.cfg.EventsDefaultLimit, uc.cfg.EventsMaxLimit)
	if err != nil {
		return nil, err
	}

	out, err := uc.events.Find(ctx, model.EventFilter{
		Category: q.Category,
		From:     q.StartDate,
		To:       q.EndDate,
		Limit:    limit,
	})
	if err != nil {
		return nil, uc.storeError(ctx, err, "list events")
	}
	return nonNil(out), nil
}

func (uc *CatalogUsecase) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e, err := uc.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Event").WithComponent(component)
		}
		return nil, uc.storeError(ctx, err, "get event")
	}
	return e, nil
}

func (uc *CatalogUsecase) ListAnalytics(ctx context.Context, q AnalyticsQuery) ([]*model.VisitorAnalytics, error) {
	if q.Month < 0 || q.Month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12").WithComponent(component)
	}
	if q.Year < 0 {
		return nil, apperrors.NewValidationError("year must be positive").WithComponent(component)
	}

	out, err := uc.analytics.Find(ctx, model.AnalyticsFilter{
		Year:        q.Year,
		Month:       q.Month,
		Country:     q.Country,
		VisitorType: q.VisitorType,
		Limit:       uc.cfg.AnalyticsMaxResults,
	})
	if err != nil {
		return nil, uc.storeError(ctx, err, "list analytics")
	}
	return nonNil(out), nil
}

func (uc *CatalogUsecase) ListHolidays(ctx context.Context, q HolidayQuery) ([]*model.PublicHoliday, error) {
	filter := model.HolidayFilter{Limit: uc.cfg.HolidaysMaxResults}
	if q.Year != 0 {
		if q.Year < 1 || q.Year > 9998 {
			return nil, apperrors.NewValidationError("year is out of range").WithComponent(component)
		}
		from := time.Date(q.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		until := from.AddDate(1, 0, 0)
		filter.From, filter.Until = &from, &until
	}

	out, err := uc.holidays.Find(ctx, filter)
	if err != nil {
		return nil, uc.storeError(ctx, err, "list holidays")
	}
	return nonNil(out), nil
}

func (uc *CatalogUsecase) storeError(ctx context.Context, err error, op string) error {
	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"operation": op,
		"error":     err.Error(),
	}).Error("Store query failed")
	return apperrors.WrapError(err, fmt.Sprintf("failed to %s", op)).WithComponent(component)
}

// resolveLimit applies def when requested is zero and rejects values outside 1..maxLimit
func resolveLimit(requested, def, maxLimit int64) (int64, error) {
	if requested == 0 {
		return def, nil
	}
	if requested < 1 || requested > maxLimit {
		return 0, apperrors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", maxLimit)).
			WithComponent(component)
	}
	return requested, nil
}

func nonNil[T any](in []*T) []*T {
	if in == nil {
		return []*T{}
	}
	return in
}

var _ CatalogUsecaseInterface = (*CatalogUsecase)(nil)
