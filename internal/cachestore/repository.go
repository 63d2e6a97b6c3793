// Package cachestore decorates a store.SectionStore with caching for its two
// expensive side-lookups: LinkedCRNs (stable for the life of a term, cached
// indefinitely) and EnrollmentInfo (volatile, cached with a short TTL).
package cachestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Repository abstracts persistence for cached payloads, independent of the
// backing store.
type Repository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RedisRepository implements Repository on top of a redis client.
type RedisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRepository constructs a redis-backed Repository.
func NewRedisRepository(client *redis.Client, logger *zap.Logger) *RedisRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRepository{client: client, logger: logger}
}

// Get retrieves and unmarshals the cached value into dest.
func (r *RedisRepository) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set marshals value and stores it with the given TTL. A zero TTL means no
// expiry.
func (r *RedisRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
