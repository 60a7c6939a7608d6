package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sarawak-tourism/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache with JSON values in Redis
type RedisCache struct {
	client *redis.Client
	prefix string
	logger logger.Logger
}

// NewRedisCache creates a Redis-backed cache. Keys are namespaced with prefix.
func NewRedisCache(client *redis.Client, prefix string, log logger.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		logger: log.WithComponent("redis_cache"),
	}
}

func (r *RedisCache) key(k string) string {
	return r.prefix + k
}

// Get implements Cache
func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.logger.WithFields(map[string]interface{}{"key": key, "error": err.Error()}).Warn("Cache read failed")
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set implements Cache
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}

	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.WithFields(map[string]interface{}{"key": key, "error": err.Error()}).Warn("Cache write failed")
		return err
	}
	return nil
}

// Ping implements Cache
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Cache
func (r *RedisCache) Close() error {
	return r.client.Close()
}

var _ Cache = (*RedisCache)(nil)
