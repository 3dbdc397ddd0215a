package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
)

// redisKeyPrefix namespaces cache keys in a shared Redis instance
const redisKeyPrefix = "tgmedia:cache:"

// RedisStore keeps the cache in Redis so several bot instances can share it
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cache store
func NewRedisStore(addr, password string, db int, logger zerolog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	logger.Info().Str("addr", addr).Msg("Redis cache store created")

	return &RedisStore{client: client, logger: logger}
}

// Get returns the cached entry for key, or (nil, nil) on a miss
func (s *RedisStore) Get(ctx context.Context, key string) (*entities.CacheEntry, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry entities.CacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	return &entry, nil
}

// Put stores an entry, overwriting any previous value for its key.
// Entries have no TTL: a telegram file_id stays valid indefinitely.
func (s *RedisStore) Put(ctx context.Context, entry *entities.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+entry.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	s.logger.Debug().Msg("Redis cache store closed")
	return s.client.Close()
}
