package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisLogStore_DefaultKey(t *testing.T) {
	store := NewRedisLogStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "")
	t.Cleanup(func() { store.Client.Close() })
	assert.Equal(t, DefaultStorageKey, store.Key)
}

func TestRedisLogStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	store := NewRedisLogStore(client, "journey-test")
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorContains(t, err, "redis get journey-test")

	err = store.Save(ctx, sampleLogs())
	assert.ErrorContains(t, err, "redis set journey-test")
}
