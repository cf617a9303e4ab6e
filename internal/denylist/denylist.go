// Package denylist revokes session tokens before their natural expiry.
// Tokens are stateless, so logout is normally a client-side delete; when
// redis is configured, logged-out token ids are additionally parked here
// until the token would have expired anyway.
package denylist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobtrackr/internal/config"
	"jobtrackr/internal/logger"
)

const keyPrefix = "denylist:"

// NewClient connects to redis. Returns nil when no address is configured;
// a nil Denylist disables revocation and logout stays purely stateless.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established",
		zap.String("addr", cfg.Addr),
	)

	return client, nil
}

type Denylist struct {
	client *redis.Client
}

func New(client *redis.Client) *Denylist {
	if client == nil {
		return nil
	}
	return &Denylist{client: client}
}

// Add parks a token id until the token's own expiry. A nil receiver is a
// no-op so callers never need to branch on configuration.
func (d *Denylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if d == nil || ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, keyPrefix+jti, "1", ttl).Err()
}

// Contains reports whether a token id has been revoked.
func (d *Denylist) Contains(ctx context.Context, jti string) (bool, error) {
	if d == nil {
		return false, nil
	}

	n, err := d.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
