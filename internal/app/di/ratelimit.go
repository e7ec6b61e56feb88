package di

import (
	"github.com/redis/go-redis/v9"

	"company_research/internal/platform/config"
	"company_research/internal/platform/http/middleware"
	"company_research/internal/platform/ratelimit"
)

// NewRateLimiter creates the inbound limiter.
// If Redis is available, it returns a Redis-backed limiter shared across instances.
// Otherwise, it falls back to an in-process limiter. It returns nil when limiting is disabled.
func NewRateLimiter(rdb *redis.Client, cfg config.RateLimit) middleware.Limiter {
	if !cfg.Enabled() {
		return nil
	}
	if rdb != nil {
		return ratelimit.NewRedisLimiter(rdb, cfg.Requests, cfg.Window, "")
	}
	return ratelimit.NewLocalLimiter(cfg.Requests, cfg.Window)
}
