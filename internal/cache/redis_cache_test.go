package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_URL")
	if addr == "" {
		t.Skip("TEST_REDIS_URL не задан, пропускаем тест Redis")
	}

	inv := &fakeInvalidator{}
	c, err := NewRedisCache(&CacheConfig{RedisURL: addr, DefaultTTL: time.Minute}, inv)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	key := "test:" + t.Name()
	require.NoError(t, c.Set(ctx, key, []byte("blob"), 0))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got)

	require.NoError(t, c.Invalidate(ctx, key))
	assert.Equal(t, []string{key}, inv.published)

	_, err = c.Get(ctx, key)
	assert.True(t, IsCacheMiss(err))
	assert.Equal(t, int64(1), c.GetMetrics().CacheHits)
}
