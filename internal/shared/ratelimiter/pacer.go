// Package ratelimiter は外部APIへの呼び出し間隔を制御します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"
)

// Pacer は連続する処理の間に待機を挟むインターフェースです。
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedPause は呼び出しごとに固定時間だけ待機します。
type FixedPause struct {
	interval time.Duration
	after    func(d time.Duration) <-chan time.Time
}

var _ Pacer = (*FixedPause)(nil)

// NewFixedPause は interval だけ待機するFixedPauseを生成します。interval が0以下なら待機しません。
func NewFixedPause(interval time.Duration) *FixedPause {
	return &FixedPause{interval: interval, after: time.After}
}

// Interval は設定された待機時間を返します。
func (p *FixedPause) Interval() time.Duration {
	return p.interval
}

// Wait は interval だけ待機します。ctx がキャンセルされた場合はその時点で戻ります。
func (p *FixedPause) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return nil
	}
	slog.DebugContext(ctx, "pausing before next call", "interval", p.interval)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.after(p.interval):
		return nil
	}
}
