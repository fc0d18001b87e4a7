package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, ttl, zap.NewNop()), mr
}

func TestCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, KeyActiveServices, cachedValue{Name: "Corte", Count: 2})

	var out cachedValue
	require.True(t, c.Get(ctx, KeyActiveServices, &out))
	assert.Equal(t, cachedValue{Name: "Corte", Count: 2}, out)
	assert.Equal(t, time.Minute, mr.TTL(KeyActiveServices))
}

func TestCache_MissAndExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	var out cachedValue
	assert.False(t, c.Get(ctx, KeyPublicSettings, &out))

	c.Set(ctx, KeyPublicSettings, cachedValue{Name: "x"})
	mr.FastForward(2 * time.Minute)
	assert.False(t, c.Get(ctx, KeyPublicSettings, &out))
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, KeyActiveServices, cachedValue{Name: "a"})
	c.Set(ctx, KeySlotInterval, 30)
	c.Invalidate(ctx, KeyActiveServices, KeySlotInterval)

	var out cachedValue
	assert.False(t, c.Get(ctx, KeyActiveServices, &out))
	var interval int
	assert.False(t, c.Get(ctx, KeySlotInterval, &interval))
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(KeyPublicSettings, "{not json"))

	var out cachedValue
	assert.False(t, c.Get(context.Background(), KeyPublicSettings, &out))
}

func TestCache_Disabled(t *testing.T) {
	ctx := context.Background()

	var nilCache *Cache
	nilCache.Set(ctx, KeyActiveServices, 1)
	nilCache.Invalidate(ctx, KeyActiveServices)
	var out int
	assert.False(t, nilCache.Get(ctx, KeyActiveServices, &out))

	noClient := New(nil, time.Minute, zap.NewNop())
	noClient.Set(ctx, KeyActiveServices, 1)
	assert.False(t, noClient.Get(ctx, KeyActiveServices, &out))

	zeroTTL, mr := newTestCache(t, 0)
	zeroTTL.Set(ctx, KeyActiveServices, 1)
	assert.False(t, mr.Exists(KeyActiveServices))
}
