package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key within a window
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Config holds rate limit settings
type Config struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DefaultConfig allows 60 requests per client per minute
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Requests: 60,
		Window:   time.Minute,
	}
}
