package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meetmate/pkg/config"
)

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "meeting:m-1", `{"id":"m-1"}`, time.Minute))

	value, ok, err := store.Get(ctx, "meeting:m-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"m-1"}`, value)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "meeting:m-1")
	require.NoError(t, err)
	assert.False(t, ok)

	store.removeExpired()
	assert.Empty(t, store.items)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, store.Set(ctx, "b", "2", time.Minute))
	require.NoError(t, store.Delete(ctx, "a", "b", "missing"))

	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "b")
	assert.False(t, ok)

	// closing twice is harmless
	assert.NoError(t, store.Close())
}

func TestNew_SelectsDriver(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	store, err := New(ctx, &config.Config{Cache: config.CacheConfig{Driver: config.CacheNone}}, logger)
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = New(ctx, &config.Config{Cache: config.CacheConfig{Driver: config.CacheMemory}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	_ = store.Close()

	_, err = New(ctx, &config.Config{Cache: config.CacheConfig{Driver: "memcached"}}, logger)
	assert.Error(t, err)
}

// Runs only when a Redis server is available
func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("MEETMATE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MEETMATE_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}))
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(ctx, "test:key", "value", time.Minute))
	value, ok, err := store.Get(ctx, "test:key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	require.NoError(t, store.Delete(ctx, "test:key"))
	_, ok, err = store.Get(ctx, "test:key")
	require.NoError(t, err)
	assert.False(t, ok)
}
