package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces checkout claims in a shared Redis.
const DefaultKeyPrefix = "parcelcart:checkout:"

// RedisStore shares idempotency claims between replicas. A claim is a key
// holding its claim time, written with SET NX and an expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. An empty prefix means
// DefaultKeyPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis connects and pings before returning the client.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	claimedAt := time.Now().UTC().Format(time.RFC3339Nano)
	err := s.client.SetArgs(ctx, s.prefix+key, claimedAt, redis.SetArgs{Mode: "NX", TTL: ttl}).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("claim %q: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("release %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) IsClaimed(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("lookup %q: %w", key, err)
	}
	return n == 1, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ shared.IdempotencyStore = (*RedisStore)(nil)
