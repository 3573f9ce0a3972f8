package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NewRedisClient connects and pings Redis
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisLimiter is a fixed-window limiter shared by every replica.
// Keys look like rl:<window_seconds>:<key>.
type RedisLimiter struct {
	client redis.Cmdable
	config Config
	logger coreport.Logger
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter backed by client
func NewRedisLimiter(client redis.Cmdable, config Config, logger coreport.Logger) *RedisLimiter {
	return &RedisLimiter{client: client, config: config, logger: logger}
}

// Allow increments the counter for key and reports whether it is still within the limit
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := "rl:" + strconv.FormatInt(int64(l.config.Window.Seconds()), 10) + ":" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return l.failOpen(redisKey, err)
	}

	// First hit in the window, or a key left without expiry by a crashed caller
	retryAfter := ttl.Val()
	if retryAfter < 0 {
		if err := l.client.Expire(ctx, redisKey, l.config.Window).Err(); err != nil {
			return l.failOpen(redisKey, err)
		}
		retryAfter = l.config.Window
	}

	count := int(incr.Val())
	decision := Decision{
		Allowed:   count <= l.config.Requests,
		Limit:     l.config.Requests,
		Remaining: max(l.config.Requests-count, 0),
	}
	if !decision.Allowed {
		decision.RetryAfter = retryAfter
	}
	return decision, nil
}

// failOpen lets the request through when Redis is unavailable
func (l *RedisLimiter) failOpen(key string, err error) (Decision, error) {
	l.logger.Warn("Rate limit check failed, allowing request", map[string]any{
		"key":   key,
		"error": err.Error(),
	})
	return Decision{Allowed: true, Limit: l.config.Requests, Remaining: l.config.Requests}, err
}
