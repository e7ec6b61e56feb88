// Package ratelimit provides per-client fixed-window limiters for inbound requests.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per key in Redis with INCR and a window TTL.
// The count is shared by every process that points to the same Redis.
type RedisLimiter struct {
	rdb       *redis.Client
	limit     int
	window    time.Duration
	namespace string
}

// NewRedisLimiter creates a RedisLimiter. An empty namespace defaults to "ratelimit:research".
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration, namespace string) *RedisLimiter {
	if namespace == "" {
		namespace = "ratelimit:research"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, namespace: namespace}
}

func (l *RedisLimiter) key(client string) string {
	return fmt.Sprintf("%s:%s", l.namespace, client)
}

// Allow increments the counter of client and reports whether it is still within the limit.
// INCR and EXPIRE NX run in one MULTI/EXEC on every hit, so a key whose TTL was lost
// gets its window back on the next request.
// On Redis errors it allows the request and returns the error for logging.
func (l *RedisLimiter) Allow(ctx context.Context, client string) (bool, error) {
	k := l.key(client)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		// TTLが既にあれば何もしない
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("redis incr %s: %w", k, err)
	}
	return incr.Val() <= int64(l.limit), nil
}
