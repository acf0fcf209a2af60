package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by ResultCache.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// ResultCache stores serialized responses in Redis with a fixed TTL.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewResultCache connects to the Redis instance at url (redis://host:port/db).
func NewResultCache(url string, ttl time.Duration) (*ResultCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return NewResultCacheWithClient(redis.NewClient(opts), ttl), nil
}

// NewResultCacheWithClient wraps an existing client.
func NewResultCacheWithClient(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl, prefix: "skillmatch"}
}

// Key derives a compact cache key from the given parts.
func (c *ResultCache) Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%x", c.prefix, hash[:12])
}

// Ping tests the Redis connection
func (c *ResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Get returns the stored payload or ErrMiss.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores payload under key for the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection
func (c *ResultCache) Close() error {
	return c.client.Close()
}
