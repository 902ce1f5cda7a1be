package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache nil 或未配置 Redis 时直接回源
type Cache struct {
	RDB    *redis.Client
	Prefix string
	Log    *zap.Logger // 可选：Redis 读写失败降级回源时记 warn
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "photostudio:",
	}
}

// Connect New + Ping（5s 超时）
func Connect(ctx context.Context, addr, pass string, db int) (*Cache, error) {
	c := New(addr, pass, db)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.RDB.Ping(ctx).Err(); err != nil {
		_ = c.RDB.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}

func (c *Cache) enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) warn(msg, key string, err error) {
	if c.Log != nil {
		c.Log.Warn(msg, zap.String("key", c.key(key)), zap.Error(err))
	}
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.enabled() {
		return load(ctx)
	}
	b, err := c.RDB.Get(ctx, c.key(key)).Bytes()
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.warn("cache get failed, loading from source", key, err)
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if e := c.RDB.Set(ctx, c.key(key), b, ttl).Err(); e != nil {
			c.warn("cache set failed", key, e)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate 写后删缓存
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	return c.RDB.Del(ctx, full...).Err()
}

func (c *Cache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.RDB.Close()
}
