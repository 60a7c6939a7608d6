package docstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mongoURI() string {
	if uri := os.Getenv("MONGO_TEST_URL"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func TestMongoStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("docstore_test_%d", time.Now().UnixNano())
	store, err := Connect(ctx, mongoURI(), dbName)
	if err != nil {
		t.Skipf("MongoDB not available, skipping integration test: %v", err)
	}
	defer func() {
		_ = store.Database().Drop(context.Background())
		_ = store.Close(context.Background())
	}()

	require.NoError(t, store.EnsureIndex(ctx, "places", Index{Field: "name", Unique: true}))
	require.NoError(t, store.Insert(ctx, "places", place{ID: "p1", Name: "Bako", Location: "Kuching", Categories: []string{"Nature"}, Rating: 5}))
	require.NoError(t, store.Insert(ctx, "places", place{ID: "p2", Name: "Niah", Location: "Miri", Categories: []string{"Nature", "Culture"}, Rating: 3}))

	err = store.Insert(ctx, "places", place{ID: "p3", Name: "Bako"})
	assert.ErrorIs(t, err, ErrDuplicate)

	var got []place
	require.NoError(t, store.Find(ctx, "places", NewQuery().Eq("categories", "Nature").OrderBy("rating", false), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)

	got = nil
	require.NoError(t, store.Find(ctx, "places", NewQuery().Where("location", OpContainsFold, "KUCH"), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	n, err := store.Count(ctx, "places", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	deleted, err := store.DeleteOne(ctx, "places", ByID("p1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var one place
	assert.ErrorIs(t, store.FindOne(ctx, "places", ByID("p1"), &one), ErrNotFound)
	assert.NoError(t, store.Ping(ctx))
}
