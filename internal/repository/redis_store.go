package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aebalz/mindful-journey/internal/model"
)

// RedisLogStore keeps the collection as one JSON value under a single key.
type RedisLogStore struct {
	Client *redis.Client
	Key    string
}

// NewRedisLogStore creates a RedisLogStore. An empty key uses DefaultStorageKey.
func NewRedisLogStore(client *redis.Client, key string) *RedisLogStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &RedisLogStore{Client: client, Key: key}
}

// Load reads the collection. A missing key is an empty collection.
func (s *RedisLogStore) Load(ctx context.Context) ([]model.MoodLog, error) {
	data, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.MoodLog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.Key, err)
	}
	return decodeLogs(data)
}

// Save overwrites the key with the full collection.
func (s *RedisLogStore) Save(ctx context.Context, logs []model.MoodLog) error {
	data, err := encodeLogs(logs)
	if err != nil {
		return err
	}
	if err := s.Client.Set(ctx, s.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key, err)
	}
	return nil
}
