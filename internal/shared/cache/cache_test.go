package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"sarawak-tourism/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// mapCache is an in-memory Cache for exercising GetOrLoad
type mapCache struct {
	data   map[string][]byte
	setErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (m *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mapCache) Ping(context.Context) error { return nil }
func (m *mapCache) Close() error               { return nil }

func TestGetOrLoad_LoadsOnceThenServesCache(t *testing.T) {
	c := newMapCache()
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]place, error) {
		calls++
		return []place{{ID: "a1", Name: "Bako"}}, nil
	}

	first, err := GetOrLoad(ctx, c, "attractions", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, c, "attractions", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestGetOrLoad_PropagatesLoadError(t *testing.T) {
	c := newMapCache()
	boom := errors.New("boom")

	_, err := GetOrLoad(context.Background(), c, "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.data)
}

func TestGetOrLoad_IgnoresWriteFailure(t *testing.T) {
	c := newMapCache()
	c.setErr = errors.New("read only")

	v, err := GetOrLoad(context.Background(), c, "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGetOrLoad_NoopAlwaysLoads(t *testing.T) {
	calls := 0
	load := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	for i := 0; i < 3; i++ {
		_, err := GetOrLoad(context.Background(), NewNoop(), "k", time.Minute, load)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestRedisCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available, skipping integration test: %v", err)
	}

	prefix := fmt.Sprintf("test:%d:", time.Now().UnixNano())
	c := NewRedisCache(client, prefix, logger.NewLoggerWithConfig("error", "text"))
	defer c.Close()

	var miss []place
	found, err := c.Get(ctx, "attractions", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	want := []place{{ID: "a1", Name: "Bako"}}
	require.NoError(t, c.Set(ctx, "attractions", want, time.Minute))

	var got []place
	found, err = c.Get(ctx, "attractions", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	ttl, err := client.TTL(ctx, prefix+"attractions").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	assert.NoError(t, c.Ping(ctx))
	client.Del(ctx, prefix+"attractions")
}
