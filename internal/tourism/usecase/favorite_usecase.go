package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/tourism/config"
	"sarawak-tourism/internal/tourism/domain/model"
	"sarawak-tourism/internal/tourism/domain/repository"

	"github.com/google/uuid"
)

// FavoriteUsecaseInterface manages per-user favorite attractions
type FavoriteUsecaseInterface interface {
	Add(ctx context.Context, userID, attractionID string) (*model.Favorite, error)
	Remove(ctx context.Context, userID, attractionID string) error
	ListForUser(ctx context.Context, userID string) ([]*model.Attraction, error)
}

// FavoriteUsecase implements FavoriteUsecaseInterface
type FavoriteUsecase struct {
	favorites   repository.FavoriteRepository
	attractions repository.AttractionRepository
	maxResults  int64
	logger      logger.Logger
	now         func() time.Time
}

// NewFavoriteUsecase creates a favorites use case
func NewFavoriteUsecase(
	favorites repository.FavoriteRepository,
	attractions repository.AttractionRepository,
	cfg *config.Config,
	log logger.Logger,
) *FavoriteUsecase {
	return &FavoriteUsecase{
		favorites:   favorites,
		attractions: attractions,
		maxResults:  cfg.FavoritesMaxResults,
		logger:      log.WithComponent("favorite_usecase"),
		now:         time.Now,
	}
}

// Add records the favorite, returning the existing record when the pair is already
// present. Two concurrent first adds may both insert.
func (uc *FavoriteUsecase) Add(ctx context.Context, userID, attractionID string) (*model.Favorite, error) {
	if err := requireIDs(userID, attractionID); err != nil {
		return nil, err
	}

	existing, err := uc.favorites.Get(ctx, userID, attractionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrFavoriteNotFound) {
		return nil, apperrors.WrapError(err, "failed to add favorite").WithComponent("favorite_usecase")
	}

	fav := &model.Favorite{
		ID:           uuid.NewString(),
		UserID:       userID,
		AttractionID: attractionID,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.favorites.Create(ctx, fav); err != nil {
		return nil, apperrors.WrapError(err, "failed to add favorite").WithComponent("favorite_usecase")
	}

	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"user_id":       userID,
		"attraction_id": attractionID,
	}).Info("Favorite added")
	return fav, nil
}

// Remove deletes one favorite record for the pair
func (uc *FavoriteUsecase) Remove(ctx context.Context, userID, attractionID string) error {
	if err := uc.favorites.Delete(ctx, userID, attractionID); err != nil {
		if errors.Is(err, model.ErrFavoriteNotFound) {
			return apperrors.NewNotFoundError("Favorite").WithComponent("favorite_usecase")
		}
		return apperrors.WrapError(err, "failed to remove favorite").WithComponent("favorite_usecase")
	}
	return nil
}

// ListForUser returns the attractions the user marked. Favorites whose attraction no
// longer exists are skipped.
func (uc *FavoriteUsecase) ListForUser(ctx context.Context, userID string) ([]*model.Attraction, error) {
	favs, err := uc.favorites.ListByUser(ctx, userID, uc.maxResults)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to list favorites").WithComponent("favorite_usecase")
	}
	if len(favs) == 0 {
		return []*model.Attraction{}, nil
	}

	ids := make([]string, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.AttractionID)
	}

	out, err := uc.attractions.Find(ctx, model.AttractionFilter{IDs: ids, Limit: uc.maxResults})
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to list favorites").WithComponent("favorite_usecase")
	}
	return nonNil(out), nil
}

func requireIDs(userID, attractionID string) error {
	ve := apperrors.NewValidationErrors()
	if strings.TrimSpace(userID) == "" {
		ve.Add("user_id", "user_id is required", userID)
	}
	if strings.TrimSpace(attractionID) == "" {
		ve.Add("attraction_id", "attraction_id is required", attractionID)
	}
	if ve.HasErrors() {
		return ve.ToAppError().WithComponent("favorite_usecase")
	}
	return nil
}

var _ FavoriteUsecaseInterface = (*FavoriteUsecase)(nil)
