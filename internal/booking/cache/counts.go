// Package cache holds the Redis-backed participant-count cache. It only
// serves reads; booking transactions always count from the store.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	id "turnero/pkg/domain"
)

const defaultTTL = 30 * time.Second

// CountCache caches confirmed participant counts per session. Entries are
// short-lived and invalidated on every booking mutation, so a stale count
// survives at most one TTL after a missed invalidation.
type CountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(c *CountCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *CountCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *CountCache) {
		c.logger = logger
	}
}

func New(client *redis.Client, opts ...Option) *CountCache {
	c := &CountCache{
		client: client,
		ttl:    defaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached count. Any Redis problem reads as a miss; the
// caller falls through to the store.
func (c *CountCache) Get(ctx context.Context, sessionID id.SessionID) (int, bool) {
	val, err := c.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "participant count cache read", "error", err)
		}
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *CountCache) Set(ctx context.Context, sessionID id.SessionID, count int) {
	if err := c.client.Set(ctx, key(sessionID), strconv.Itoa(count), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "participant count cache write", "error", err)
	}
}

func (c *CountCache) Invalidate(ctx context.Context, sessionID id.SessionID) {
	if err := c.client.Del(ctx, key(sessionID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "participant count cache invalidate", "error", err)
	}
}

func key(sessionID id.SessionID) string {
	return fmt.Sprintf("booking:participants:%s", sessionID.String())
}
