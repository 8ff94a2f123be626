// Package redis owns the Redis connection used by the participant-count
// cache. Redis is optional; without a URL the server books fine, it just
// counts from the store on every read.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"turnero/internal/platform/config"
)

// Client wraps the go-redis client so callers get a health check without
// reaching into redis.Client directly.
type Client struct {
	*redis.Client
}

// New connects and verifies the connection. A nil Client with a nil error
// means Redis is not configured.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
