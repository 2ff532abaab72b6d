package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const slotPrefix = "kv:slot:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore keeps slots in Redis so they survive restarts and can be
// shared by multiple instances.
func NewRedisStore(client *redis.Client) SlotStore {
	return &redisStore{client: client}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, slotPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("kv: redis get: %w", err)
	}
	return value, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, slotPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv: redis set: %w", err)
	}
	return nil
}
