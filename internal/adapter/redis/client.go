// Package redis stores topics, resources and users in Redis.
//
// Versions of a topic form a thread: a ZSET scored by version number whose
// members point at one hash per version. Heads, resources and users are
// hashes; sets index them. All keys live under a configurable namespace.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/knowledge-base/internal/config"
)

// Client is a namespaced Redis connection shared by the repositories.
type Client struct {
	rdb *goredis.Client
	ns  string
	log *slog.Logger
}

// NewClient connects to the server described by cfg.
// It does not ping; call Ping for a fail-fast check.
func NewClient(cfg config.RedisConfig, log *slog.Logger) (*Client, error) {
	if cfg.Namespace == "" {
		return nil, errors.New("redis: namespace cannot be empty")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Client{rdb: rdb, ns: cfg.Namespace, log: log.With("component", "redis")}, nil
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// TxManager runs callbacks directly. Redis has no interactive transactions,
// so a multi-step callback is best-effort: each repository call is atomic on
// its own and a concurrent version append is still caught as a conflict.
type TxManager struct{}

// NewTxManager creates a new TxManager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// RunInTx calls fn with ctx.
func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
