package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxLocalKeys bounds the in-memory limiter table.
const maxLocalKeys = 10000

type localEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is the in-process fallback used when Redis is unavailable.
// Each client gets a token bucket of size limit refilled over window.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*localEntry
	limit    int
	every    rate.Limit
	maxKeys  int
	now      func() time.Time
}

// NewLocalLimiter creates a LocalLimiter allowing limit requests per window per client.
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*localEntry),
		limit:    limit,
		every:    rate.Limit(float64(limit) / window.Seconds()),
		maxKeys:  maxLocalKeys,
		now:      time.Now,
	}
}

// Allow reports whether client may make another request now. It never returns an error.
func (l *LocalLimiter) Allow(_ context.Context, client string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[client]
	if !ok {
		if len(l.limiters) >= l.maxKeys {
			l.evict(now)
		}
		e = &localEntry{lim: rate.NewLimiter(l.every, l.limit)}
		l.limiters[client] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1), nil
}

// evict は満タンに戻ったバケットを捨てます。
// 1つもなければ最も長く使われていないクライアントを1件だけ捨てます。
func (l *LocalLimiter) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range l.limiters {
		// 満タンのバケットは新規作成と同じ状態
		if e.lim.TokensAt(now) >= float64(l.limit) {
			delete(l.limiters, k)
			continue
		}
		if oldestKey == "" || e.lastSeen.Before(oldest) {
			oldestKey, oldest = k, e.lastSeen
		}
	}
	if len(l.limiters) >= l.maxKeys && oldestKey != "" {
		delete(l.limiters, oldestKey)
	}
}
