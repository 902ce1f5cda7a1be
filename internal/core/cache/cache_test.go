package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type item struct {
	Name string `json:"name"`
}

func TestGetOrLoadJSON_NilCacheLoadsEveryTime(t *testing.T) {
	var c *Cache
	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return &item{Name: "x"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "x", got.Name)
	}
	assert.Equal(t, 3, calls)
}

func TestGetOrLoad_NilCachePropagatesError(t *testing.T) {
	var c *Cache
	boom := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvalidate_NilCacheIsNoop(t *testing.T) {
	var c *Cache
	assert.NoError(t, c.Invalidate(context.Background(), "a", "b"))
	assert.NoError(t, c.Close())
}

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSON_FillsOnMissThenHits(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return &item{Name: "studio"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrLoadJSON(c, ctx, "settings", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "studio", got.Name)
	}
	assert.Equal(t, 1, calls)

	raw, err := mr.Get("photostudio:settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"studio"}`, raw)
	assert.Equal(t, time.Minute, mr.TTL("photostudio:settings"))
}

func TestGetOrLoadJSON_CorruptEntryIsReloaded(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c, mr := newRedisCache(t)
	c.Log = zap.New(core)
	require.NoError(t, mr.Set("photostudio:settings", "{not json"))

	calls := 0
	got, err := GetOrLoadJSON(c, context.Background(), "settings", time.Minute, func(context.Context) (*item, error) {
		calls++
		return &item{Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.Equal(t, 1, calls)

	raw, err := mr.Get("photostudio:settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"fresh"}`, raw)
	assert.Equal(t, 1, logs.FilterMessage("cache entry corrupt, reloading").Len())
}

func TestInvalidate_DropsKeys(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]byte, error) {
		calls++
		return []byte("v"), nil
	}

	_, err := c.GetOrLoad(ctx, "a", time.Minute, load)
	require.NoError(t, err)
	require.True(t, mr.Exists("photostudio:a"))

	require.NoError(t, c.Invalidate(ctx, "a"))
	assert.False(t, mr.Exists("photostudio:a"))

	_, err = c.GetOrLoad(ctx, "a", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoad_RedisDownFallsBackAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mr := miniredis.RunT(t)
	c := &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}),
		Prefix: "photostudio:",
		Log:    zap.New(core),
	}
	t.Cleanup(func() { _ = c.Close() })
	mr.Close()

	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("from-db"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "from-db", string(b))
	assert.Equal(t, 1, logs.FilterMessage("cache get failed, loading from source").Len())
	assert.Equal(t, 1, logs.FilterMessage("cache set failed").Len())
}
