package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerline/investprofile/backend/pkg/config"
)

const connectTimeout = 5 * time.Second

// Client wraps the Redis connection. A disabled client (REDIS_ENABLED
// unset) carries no connection; callers check Enabled before use.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// New connects per the Redis section of the config. With Redis
// disabled it returns an inert client rather than an error, so wiring
// code can treat the backend as optional.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{enabled: false}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{
		rdb:     rdb,
		enabled: true,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Enabled reports whether a live connection is behind this client
func (c *Client) Enabled() bool {
	return c.enabled
}

// Redis exposes the underlying client for the store and cache layers
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
