package livecall

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// InitRedis connects the shared Redis client used for rate limiting and the
// coaching-context cache. Redis is optional: when it is not configured the
// callers degrade to their uncached, unlimited behavior.
func InitRedis(addr string, password string, db int) error {
	opt := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}

	rdb = redis.NewClient(opt)

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

// RedisEnabled reports whether a live client is available.
func RedisEnabled() bool {
	return rdb != nil
}
