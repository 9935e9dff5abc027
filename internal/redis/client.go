package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/groupwarden/groupwarden/internal/config"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client used by the settings store.
type Client struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewClient connects to Redis, retrying with exponential backoff so the
// service survives Redis coming up slightly later than the bot.
func NewClient(cfg config.RedisConfig, log *logger.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	}

	if err := backoff.Retry(ping, policy); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to connect to Redis at %s:%d", cfg.Host, cfg.Port).
			Mark(ierr.ErrDatabase)
	}

	log.Infow("connected to redis", "host", cfg.Host, "port", cfg.Port, "db", cfg.DB)

	return &Client{rdb: rdb, log: log}, nil
}

// GetClient returns the underlying go-redis client.
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
