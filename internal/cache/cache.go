// Package cache is a fail-open, version-namespaced JSON cache over Redis.
// Callers must never depend on it for correctness, only latency: when the
// backing Redis is unconfigured or unreachable every operation degrades to
// a no-op and reads fall through to the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/filmfriend/filmfriend/pkg/logger"
	storage "github.com/filmfriend/filmfriend/pkg/redis"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

// Version prefixes every key. Bumping it invalidates the whole cache
// without any per-key migration.
const Version = "v1"

// DefaultTTL applies when a caller passes a non-positive TTL.
const DefaultTTL = time.Hour

type Cache struct {
	client *storage.RedisClient
	log    *logger.Logger
}

// New builds a cache over the given Redis client. A nil client yields a
// disabled cache whose operations all no-op.
func New(client *storage.RedisClient, log *logger.Logger) *Cache {
	return &Cache{client: client, log: log}
}

// Enabled reports whether a Redis backend is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Key returns the version-namespaced form of key.
func Key(key string) string {
	return Version + ":" + key
}

// Get looks up key and JSON-decodes the stored value into dest. It returns
// false on a miss, a disabled backend, or any Redis error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.client.Get(ctx, Key(key)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.warn(ctx, key, err)
		return false
	}
	return true
}

// Set JSON-encodes value and stores it under key with the given TTL.
// Failures are swallowed.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.warn(ctx, key, err)
		return
	}
	if err := c.client.Set(ctx, Key(key), data, ttl).Err(); err != nil {
		c.warn(ctx, key, err)
	}
}

// Del removes the given keys. Failures are swallowed.
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = Key(k)
	}
	if err := c.client.Del(ctx, namespaced...).Err(); err != nil {
		c.warn(ctx, keys[0], err)
	}
}

func (c *Cache) warn(ctx context.Context, key string, err error) {
	if c.log == nil {
		return
	}
	c.log.Warn(ctx).WithMeta(utils.Map{"key": key, "error": err.Error()}).Logs("cache operation failed")
}
