// Package redisx wraps the redis client with the two things the console
// actually uses redis for: caching the syndication order report between
// polls, and short exclusive locks so concurrent syncs don't double-hit the
// provider.
package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct{ Rdb *redis.Client }

func New(addr, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return &Client{Rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.Rdb.Ping(ctx).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Rdb.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return c.Rdb.Set(ctx, key, val, ttl).Err()
}

// Lock takes a short-lived exclusive lock on key via SETNX. On success the
// returned release func deletes the lock; on contention or redis error the
// lock is reported as not acquired and the TTL is the safety net. Release
// runs on a fresh context so a deferred release still fires after the
// caller's context is cancelled.
func (c *Client) Lock(ctx context.Context, key string, ttl time.Duration) (func(), bool) {
	ok, err := c.Rdb.SetNX(ctx, key, "1", ttl).Result()
	if err != nil || !ok {
		return nil, false
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		c.Rdb.Del(releaseCtx, key)
	}, true
}
