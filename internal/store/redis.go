package store

import (
	"context"
	"errors"

	"callsheet/internal/models"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps the snapshot JSON under a single string key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (*models.Snapshot, error) {
	payload, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(payload)
}

func (s *RedisStore) Save(ctx context.Context, snap models.Snapshot) error {
	payload, err := encode(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, payload, 0).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
