package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache caches dashboard reads (standings, daily scoreboards) so the
// hot endpoints don't hit Postgres on every request.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis, retrying a few times so the service can
// start while Redis is still coming up.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()

		if err == nil {
			log.Printf("[cache] ✓ connected to Redis at %s", addr)
			return &RedisCache{client: client}, nil
		}

		lastErr = err
		log.Printf("[cache] ⚠️ Redis not ready (attempt %d/5): %v", attempt, err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("connecting to Redis at %s: %w", addr, lastErr)
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetJSON marshals value and stores it under key with a TTL.
func (rc *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling cache value for %s: %w", key, err)
	}
	return rc.client.Set(ctx, key, data, ttl).Err()
}

// GetJSON fetches key and unmarshals it into dest. The second return is
// false on a cache miss.
func (rc *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := rc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshaling cache value for %s: %w", key, err)
	}
	return true, nil
}

// Delete removes keys, used to invalidate after ingestion writes.
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}
