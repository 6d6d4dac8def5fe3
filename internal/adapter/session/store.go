package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const activeBatchKey = "orderflow:active_batch"

// RedisStore keeps the active batch tag in a single durable Redis key so it
// survives process restarts.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore constructs the store over an existing client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the active batch tag, or the empty string when none is set.
func (s *RedisStore) Get(ctx context.Context) (string, error) {
	tag, err := s.client.Get(ctx, activeBatchKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tag, nil
}

// Set stores the active batch tag. The key has no expiry: a batch stays
// active until staff ends it.
func (s *RedisStore) Set(ctx context.Context, tag string) error {
	return s.client.Set(ctx, activeBatchKey, tag, 0).Err()
}

// Clear removes the active batch tag.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, activeBatchKey).Err()
}
