package livecall

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles call-analysis requests per user. Counters live in
// Redis so the limit holds across instances.
type RateLimiter struct {
	rdb *redis.Client
}

// RateLimitConfig defines how many analyses a user may submit per window.
type RateLimitConfig struct {
	MaxAnalyses int
	Window      time.Duration
}

// DefaultRateLimitConfig allows a burst of analyses per minute, enough for
// back-to-back practice calls but not for scripted hammering.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxAnalyses: 10,
		Window:      time.Minute,
	}
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// AllowAnalysis checks and records one analysis request for the user. With
// no Redis client configured every request is allowed.
func (rl *RateLimiter) AllowAnalysis(orgID, userID string, config RateLimitConfig) (bool, error) {
	if rl == nil || rl.rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate:analyze:%s:%s", orgID, userID)

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		rl.rdb.Expire(ctx, key, config.Window)
	}

	return count <= int64(config.MaxAnalyses), nil
}
