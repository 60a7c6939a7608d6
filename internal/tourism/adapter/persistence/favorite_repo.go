package persistence

import (
	"context"
	"errors"
	"fmt"

	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/tourism/domain/model"
	"sarawak-tourism/internal/tourism/domain/repository"
)

// FavoriteRepository implements repository.FavoriteRepository on a document store.
// Pair uniqueness is enforced by the use case, not by an index.
type FavoriteRepository struct {
	store docstore.Store
}

// NewFavoriteRepository creates the repository and ensures its indexes
func NewFavoriteRepository(ctx context.Context, store docstore.Store) (*FavoriteRepository, error) {
	if err := store.EnsureIndex(ctx, FavoritesCollection, docstore.Index{Field: "user_id"}); err != nil {
		return nil, err
	}
	return &FavoriteRepository{store: store}, nil
}

func pair(userID, attractionID string) *docstore.Query {
	return docstore.NewQuery().Eq("user_id", userID).Eq("attraction_id", attractionID)
}

func (r *FavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	if err := r.store.Insert(ctx, FavoritesCollection, favorite); err != nil {
		return fmt.Errorf("create favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Get(ctx context.Context, userID, attractionID string) (*model.Favorite, error) {
	var fav model.Favorite
	if err := r.store.FindOne(ctx, FavoritesCollection, pair(userID, attractionID), &fav); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, model.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	return &fav, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]*model.Favorite, error) {
	q := docstore.NewQuery().Eq("user_id", userID).WithLimit(limit)
	var out []*model.Favorite
	if err := r.store.Find(ctx, FavoritesCollection, q, &out); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return out, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID, attractionID string) error {
	n, err := r.store.DeleteOne(ctx, FavoritesCollection, pair(userID, attractionID))
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if n == 0 {
		return model.ErrFavoriteNotFound
	}
	return nil
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
