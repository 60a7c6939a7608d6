package persistence

import (
	"context"
	"fmt"
	"time"

	"sarawak-tourism/internal/itinerary/domain/model"
	"sarawak-tourism/internal/itinerary/domain/repository"
	"sarawak-tourism/internal/shared/docstore"
)

const ItinerariesCollection = "itineraries"

// ItineraryRepository implements repository.ItineraryRepository on a document store
type ItineraryRepository struct {
	store docstore.Store
}

// NewItineraryRepository creates the repository and ensures its indexes
func NewItineraryRepository(ctx context.Context, store docstore.Store) (*ItineraryRepository, error) {
	for _, idx := range []docstore.Index{{Field: "user_id"}, {Field: "created_at"}} {
		if err := store.EnsureIndex(ctx, ItinerariesCollection, idx); err != nil {
			return nil, err
		}
	}
	return &ItineraryRepository{store: store}, nil
}

func (r *ItineraryRepository) Create(ctx context.Context, itinerary *model.Itinerary) error {
	if err := r.store.Insert(ctx, ItinerariesCollection, itinerary); err != nil {
		return fmt.Errorf("create itinerary: %w", err)
	}
	return nil
}

func (r *ItineraryRepository) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	q := docstore.NewQuery().
		Eq("user_id", userID).
		Where("created_at", docstore.OpGte, since)
	n, err := r.store.Count(ctx, ItinerariesCollection, q)
	if err != nil {
		return 0, fmt.Errorf("count itineraries: %w", err)
	}
	return n, nil
}

func (r *ItineraryRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]*model.Itinerary, error) {
	q := docstore.NewQuery().
		Eq("user_id", userID).
		OrderBy("created_at", true).
		WithLimit(limit)
	var out []*model.Itinerary
	if err := r.store.Find(ctx, ItinerariesCollection, q, &out); err != nil {
		return nil, fmt.Errorf("list itineraries: %w", err)
	}
	return out, nil
}

var _ repository.ItineraryRepository = (*ItineraryRepository)(nil)
