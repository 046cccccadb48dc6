package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/listify/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed duplicate-spec registry, for deployments
// where multiple instances must see each other's entries
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a registry backed by the Redis at the given URL
// (redis://[user:pass@]host:port/db)
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

// Get retrieves a value from the registry
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrRegistryMiss
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	return value, nil
}

// Set stores a value. A non-positive TTL means the entry never expires.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	return nil
}

// Delete removes a value from the registry
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	return nil
}

// Exists checks whether a key is present
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	return n > 0, nil
}

// Ping verifies connectivity to the Redis backend
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	return nil
}
