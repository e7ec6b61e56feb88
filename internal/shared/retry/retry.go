// Package retry runs an operation with bounded attempts and exponential backoff.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// maxInterval caps a single delay. It only matters for large attempt counts.
const maxInterval = 10 * time.Minute

// Policy describes how an operation is retried.
//
// The operation runs at most MaxAttempts times. The first retry waits BaseDelay,
// and every following wait is multiplied by Multiplier (no jitter).
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// Operation is a single attempt of the retried call.
type Operation[T any] func(ctx context.Context) (T, error)

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	return p
}

// Delays returns the waits between attempts in order, MaxAttempts-1 entries.
func (p Policy) Delays() []time.Duration {
	p = p.normalized()
	out := make([]time.Duration, 0, p.MaxAttempts-1)
	d := p.BaseDelay
	for i := 1; i < p.MaxAttempts; i++ {
		out = append(out, d)
		d = time.Duration(float64(d) * p.Multiplier)
	}
	return out
}

// Do runs op until it succeeds, the attempts are exhausted or ctx is done.
// The last error is returned unchanged so callers can wrap it.
func Do[T any](ctx context.Context, p Policy, name string, op Operation[T]) (T, error) {
	return do(ctx, p, name, op, nil)
}

func do[T any](ctx context.Context, p Policy, name string, op Operation[T], notify backoff.Notify) (T, error) {
	p = p.normalized()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.RandomizationFactor = 0
	b.Multiplier = p.Multiplier
	b.MaxInterval = maxInterval

	attempt := 0
	wrapped := func() (T, error) {
		attempt++
		slog.DebugContext(ctx, "attempt", "op", name, "attempt", attempt)
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		slog.ErrorContext(ctx, "attempt failed", "op", name, "attempt", attempt, "max_attempts", p.MaxAttempts, "error", err)
		// 呼び出し元のキャンセルは再試行しない
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	return backoff.Retry(ctx, wrapped,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.WarnContext(ctx, "retrying", "op", name, "next_attempt", attempt+1, "delay", next)
			if notify != nil {
				notify(err, next)
			}
		}),
	)
}
