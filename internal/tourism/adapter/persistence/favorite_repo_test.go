package persistence_test

import (
	"context"
	"testing"
	"time"

	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/tourism/adapter/persistence"
	"sarawak-tourism/internal/tourism/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := persistence.NewFavoriteRepository(ctx, docstore.NewMemoryStore())
	require.NoError(t, err)

	fav := &model.Favorite{ID: "f1", UserID: "u1", AttractionID: "a1", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, fav))
	require.NoError(t, repo.Create(ctx, &model.Favorite{ID: "f2", UserID: "u1", AttractionID: "a2"}))
	require.NoError(t, repo.Create(ctx, &model.Favorite{ID: "f3", UserID: "u2", AttractionID: "a1"}))

	got, err := repo.Get(ctx, "u1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "f1", got.ID)

	_, err = repo.Get(ctx, "u2", "a2")
	assert.ErrorIs(t, err, model.ErrFavoriteNotFound)

	list, err := repo.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, "u1", "a1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1", "a1"), model.ErrFavoriteNotFound)
}
