package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	limiter := NewMemoryLimiter(Config{Enabled: true, Requests: 3, Window: time.Hour})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "request %d", i+1)
		assert.Equal(t, 3, decision.Limit)
	}

	decision, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Zero(t, decision.Remaining)
	assert.Positive(t, decision.RetryAfter)

	// Buckets are per key
	decision, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

// Runs only against a real Redis, e.g. REDIS_ADDR=localhost:6379
func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLimiter(client, Config{Enabled: true, Requests: 2, Window: time.Minute}, logger.NewNoopLogger())
	key := fmt.Sprintf("test-%d", time.Now().UnixNano())

	for i := 0; i < 2; i++ {
		decision, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	}

	decision, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Positive(t, decision.RetryAfter)
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLimiter(client, Config{Enabled: true, Requests: 5, Window: time.Minute}, logger.NewNoopLogger())
	decision, err := limiter.Allow(context.Background(), "10.0.0.1")

	assert.Error(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 5, decision.Remaining)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, client)
}
