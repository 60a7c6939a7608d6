package usecase

import (
	"context"
	"fmt"
	"time"

	"sarawak-tourism/internal/itinerary/config"
	"sarawak-tourism/internal/itinerary/domain/model"
	"sarawak-tourism/internal/itinerary/domain/repository"
	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/metrics"
	"sarawak-tourism/internal/shared/utils"
	"sarawak-tourism/internal/shared/validation"

	"github.com/google/uuid"
)

const component = "itinerary_usecase"

// ItineraryUsecaseInterface defines the itinerary operations
type ItineraryUsecaseInterface interface {
	Generate(ctx context.Context, req *GenerateRequest, identity string) (*model.Itinerary, error)
	CheckLimit(ctx context.Context, identity string) (*model.LimitStatus, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Itinerary, error)
}

// GenerateRequest is the caller's planning request
type GenerateRequest struct {
	Interests []string `json:"interests" validate:"max=5,unique,dive,oneof=Culture Adventure Nature Foods Festivals"`
	Duration  int      `json:"duration" validate:"oneof=1 3 5 7"`
	Budget    string   `json:"budget" validate:"oneof=low medium high"`
}

// ItineraryUsecase implements ItineraryUsecaseInterface
type ItineraryUsecase struct {
	repo      repository.ItineraryRepository
	source    repository.ContextSource
	completer repository.Completer
	cfg       *config.Config
	logger    logger.Logger
	metrics   metrics.Recorder
	now       func() time.Time
}

// NewItineraryUsecase creates the use case
func NewItineraryUsecase(
	repo repository.ItineraryRepository,
	source repository.ContextSource,
	completer repository.Completer,
	cfg *config.Config,
	log logger.Logger,
	rec metrics.Recorder,
) *ItineraryUsecase {
	return &ItineraryUsecase{
		repo:      repo,
		source:    source,
		completer: completer,
		cfg:       cfg,
		logger:    log.WithComponent(component),
		metrics:   rec,
		now:       time.Now,
	}
}

// WithClock replaces the time source
func (uc *ItineraryUsecase) WithClock(now func() time.Time) *ItineraryUsecase {
	uc.now = now
	return uc
}

// Generate validates req, enforces the identity's daily quota, asks the completer for
// a plan and persists it. Nothing is stored when generation fails.
// The quota check and the insert are not atomic; concurrent requests may overshoot.
func (uc *ItineraryUsecase) Generate(ctx context.Context, req *GenerateRequest, identity string) (*model.Itinerary, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("request body is required").WithComponent(component)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	ctx = utils.WithOperation(ctx, "generate_itinerary")
	identity = normalizeIdentity(identity)
	log := uc.logger.WithContext(ctx).WithFields(map[string]interface{}{"identity": identity})

	now := uc.now().UTC()
	dayStart, reset := model.DayWindow(now)

	used, err := uc.repo.CountSince(ctx, identity, dayStart)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to check itinerary quota").WithComponent(component)
	}
	if used >= int64(uc.cfg.DailyLimit) {
		uc.metrics.RecordItineraryRateLimited()
		log.Info("Daily itinerary limit reached")
		return nil, apperrors.NewRateLimitError(
			fmt.Sprintf("Daily limit of %d itineraries reached. Try again after midnight UTC.", uc.cfg.DailyLimit),
			reset,
		).WithComponent(component)
	}

	pc, err := uc.gather(ctx, req.Interests, dayStart)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to load itinerary context").WithComponent(component)
	}

	sessionID := "itinerary_" + uuid.NewString()
	text, err := uc.completer.Complete(ctx, sessionID, buildPrompt(req, pc, uc.cfg.MaxEntryLength))
	if err != nil {
		uc.metrics.RecordUpstreamFailure("ai_provider")
		return nil, apperrors.NewUpstreamGenerationError("Failed to generate itinerary", err).WithComponent(component)
	}

	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}
	it := &model.Itinerary{
		ID:        uuid.NewString(),
		UserID:    identity,
		Itinerary: text,
		Interests: interests,
		Duration:  req.Duration,
		Budget:    req.Budget,
		CreatedAt: now,
	}
	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, apperrors.WrapError(err, "failed to save itinerary").WithComponent(component)
	}

	kind := "user"
	if identity == model.GuestIdentity {
		kind = model.GuestIdentity
	}
	uc.metrics.RecordItineraryGenerated(kind)
	log.WithFields(map[string]interface{}{
		"itinerary_id": it.ID,
		"session_id":   sessionID,
		"used_today":   used + 1,
	}).Info("Itinerary generated")
	return it, nil
}

// CheckLimit reports the identity's quota without changing it
func (uc *ItineraryUsecase) CheckLimit(ctx context.Context, identity string) (*model.LimitStatus, error) {
	identity = normalizeIdentity(identity)
	dayStart, reset := model.DayWindow(uc.now())

	used, err := uc.repo.CountSince(ctx, identity, dayStart)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to check itinerary quota").WithComponent(component)
	}

	remaining := int64(uc.cfg.DailyLimit) - used
	if remaining < 0 {
		remaining = 0
	}
	return &model.LimitStatus{
		DailyLimit:     uc.cfg.DailyLimit,
		UsedToday:      int(used),
		RemainingToday: int(remaining),
		ResetTime:      reset,
	}, nil
}

// ListForUser returns the identity's itineraries, newest first
func (uc *ItineraryUsecase) ListForUser(ctx context.Context, userID string) ([]*model.Itinerary, error) {
	out, err := uc.repo.ListByUser(ctx, userID, uc.cfg.HistoryMaxItems)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to list itineraries").WithComponent(component)
	}
	if out == nil {
		out = []*model.Itinerary{}
	}
	return out, nil
}

func (uc *ItineraryUsecase) gather(ctx context.Context, interests []string, from time.Time) (promptContext, error) {
	var pc promptContext
	var err error

	if pc.Attractions, err = uc.source.Attractions(ctx, interests, uc.cfg.MaxAttractions); err != nil {
		return pc, err
	}
	if pc.Events, err = uc.source.UpcomingEvents(ctx, from, uc.cfg.MaxEvents); err != nil {
		return pc, err
	}
	if pc.Holidays, err = uc.source.UpcomingHolidays(ctx, from, uc.cfg.MaxHolidays); err != nil {
		return pc, err
	}
	return pc, nil
}

func normalizeIdentity(identity string) string {
	if identity == "" {
		return model.GuestIdentity
	}
	return identity
}

var _ ItineraryUsecaseInterface = (*ItineraryUsecase)(nil)
