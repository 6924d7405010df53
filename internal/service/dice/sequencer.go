package dice

import (
	"context"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

const defaultTagKey = "dice:session:tag"

// CounterSequencer is an in-process tag counter.
type CounterSequencer struct {
	n atomic.Int64
}

func (c *CounterSequencer) Next(context.Context) (int64, error) {
	return c.n.Add(1), nil
}

// RedisSequencer keeps the tag counter in redis so tags keep increasing
// across restarts.
type RedisSequencer struct {
	rdb *redis.Client
	key string
}

func NewRedisSequencer(rdb *redis.Client, key string) *RedisSequencer {
	if key == "" {
		key = defaultTagKey
	}
	return &RedisSequencer{rdb: rdb, key: key}
}

func (r *RedisSequencer) Next(ctx context.Context) (int64, error) {
	return r.rdb.Incr(ctx, r.key).Result()
}
