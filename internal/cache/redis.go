// Package cache keeps fetched spreadsheet bodies in Redis so repeated
// invocations do not hit the publishing endpoint every time.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key this package writes.
const keyPrefix = "ffstats:csv:"

// DefaultTTL is used when a zero TTL is passed to NewRedisCache.
const DefaultTTL = 10 * time.Minute

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

// RedisCache stores response bodies keyed by source URL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redisURL (redis://host:port/db) and pings it.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// HealthCheck pings Redis.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// TTL returns the expiry applied to new entries.
func (rc *RedisCache) TTL() time.Duration { return rc.ttl }

// Get returns the cached body for url, or ErrMiss.
func (rc *RedisCache) Get(ctx context.Context, url string) (string, error) {
	v, err := rc.client.Get(ctx, Key(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

// Set stores body for url with the cache TTL.
func (rc *RedisCache) Set(ctx context.Context, url, body string) error {
	return rc.client.Set(ctx, Key(url), body, rc.ttl).Err()
}

// Delete removes the entries for the given URLs.
func (rc *RedisCache) Delete(ctx context.Context, urls ...string) error {
	if len(urls) == 0 {
		return nil
	}
	keys := make([]string, len(urls))
	for i, u := range urls {
		keys[i] = Key(u)
	}
	return rc.client.Del(ctx, keys...).Err()
}

// Clear deletes every entry written by this package and returns how many
// keys were removed.
func (rc *RedisCache) Clear(ctx context.Context) (int, error) {
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return n, fmt.Errorf("scan: %w", err)
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				return n, fmt.Errorf("del: %w", err)
			}
			n += len(keys)
		}
		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}

// Key returns the Redis key for a source URL.
func Key(url string) string {
	return keyPrefix + url
}
