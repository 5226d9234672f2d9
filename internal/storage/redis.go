package storage

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ledgerline/investprofile/backend/pkg/redis"
)

// RedisStore persists records in Redis. Production default.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves the value for key
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Redis().Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, &StorageError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set writes the value for key. Records have no TTL; they live until
// replaced or reset.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Redis().Set(ctx, key, value, 0).Err(); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes the key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Redis().Del(ctx, key).Err(); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
