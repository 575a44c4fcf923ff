package handlers

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache stores rendered response bodies. A miss is reported as (nil, nil).
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type redisCache struct {
	client redis.Cmdable
}

// NewRedisCache returns a ResponseCache backed by Redis string keys.
func NewRedisCache(client redis.Cmdable) ResponseCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return body, err
}

func (c *redisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, body, ttl).Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// cacheKey scopes a response to the dataset snapshot so a reload never serves stale bodies.
// params are the bound, defaulted query parameters; Encode sorts them by key.
func (h *Handler) cacheKey(path string, params url.Values) string {
	key := "wc:" + h.engine.Snapshot().ID + ":" + path
	if len(params) > 0 {
		key += "?" + params.Encode()
	}
	return key
}
