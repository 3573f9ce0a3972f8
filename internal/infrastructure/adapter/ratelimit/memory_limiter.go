package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter is a per-process token bucket limiter used when Redis is not configured
type MemoryLimiter struct {
	mu       sync.Mutex
	config   Config
	limit    rate.Limit
	limiters map[string]*rate.Limiter
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter refills config.Requests tokens per config.Window with a burst of config.Requests
func NewMemoryLimiter(config Config) *MemoryLimiter {
	return &MemoryLimiter{
		config:   config,
		limit:    rate.Every(config.Window / time.Duration(max(config.Requests, 1))),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow takes one token from key's bucket
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.config.Requests)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	reservation := limiter.Reserve()
	delay := reservation.Delay()
	if delay > 0 {
		reservation.Cancel()
		return Decision{
			Allowed:    false,
			Limit:      l.config.Requests,
			Remaining:  0,
			RetryAfter: delay,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     l.config.Requests,
		Remaining: max(int(limiter.Tokens()), 0),
	}, nil
}
