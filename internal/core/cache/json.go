package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON 以 JSON 缓存一个值；缓存里的坏数据会被删掉并重新回源
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	if !c.enabled() {
		return load(ctx)
	}
	fill := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	b, err := c.GetOrLoad(ctx, key, ttl, fill)
	if err != nil {
		return nil, err
	}
	out, err := decodeJSON[T](b)
	if err == nil {
		return out, nil
	}

	c.warn("cache entry corrupt, reloading", key, err)
	if e := c.Invalidate(ctx, key); e != nil {
		c.warn("cache invalidate failed", key, e)
	}
	if b, err = c.GetOrLoad(ctx, key, ttl, fill); err != nil {
		return nil, err
	}
	return decodeJSON[T](b)
}

func decodeJSON[T any](b []byte) (*T, error) {
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
