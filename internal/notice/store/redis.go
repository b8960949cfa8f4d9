package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDeduper records sent notices in Redis so claims survive restarts and
// are shared between replicas.
type RedisDeduper struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisDeduper constructs a deduper; keys are namespaced with prefix.
func NewRedisDeduper(client redis.UniversalClient, prefix string) *RedisDeduper {
	return &RedisDeduper{client: client, prefix: prefix}
}

func (d *RedisDeduper) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.prefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim notice %s: %w", key, err)
	}
	return ok, nil
}

func (d *RedisDeduper) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, d.prefix+key).Err(); err != nil {
		return fmt.Errorf("release notice %s: %w", key, err)
	}
	return nil
}
