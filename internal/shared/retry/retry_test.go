package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream error")

func TestPolicy_Delays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		policy   Policy
		expected []time.Duration
	}{
		{
			name:     "search policy doubles from 2s",
			policy:   Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second, Multiplier: 2},
			expected: []time.Duration{2 * time.Second, 4 * time.Second},
		},
		{
			name:     "completion policy doubles from 1s",
			policy:   Policy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2},
			expected: []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name:     "single attempt has no delays",
			policy:   Policy{MaxAttempts: 1, BaseDelay: time.Second, Multiplier: 2},
			expected: []time.Duration{},
		},
		{
			name:     "zero attempts is treated as one",
			policy:   Policy{},
			expected: []time.Duration{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.policy.Delays())
		})
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}, "test",
		func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversAfterFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}, "test",
		func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errUpstream
			}
			return 42, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestDo_NeverExceedsMaxAttempts(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	calls := 0
	policy := Policy{MaxAttempts: 3, BaseDelay: 2 * time.Millisecond, Multiplier: 2}

	_, err := do(context.Background(), policy, "test",
		func(ctx context.Context) (struct{}, error) {
			calls++
			return struct{}{}, errUpstream
		},
		func(err error, next time.Duration) {
			delays = append(delays, next)
		})

	require.ErrorIs(t, err, errUpstream)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Millisecond, 4 * time.Millisecond}, delays)
}

func TestDo_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Do(ctx, Policy{MaxAttempts: 3, BaseDelay: time.Hour, Multiplier: 2}, "test",
		func(ctx context.Context) (string, error) {
			calls++
			cancel()
			return "", errUpstream
		})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_DoesNotRetryCanceledOperation(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}, "test",
		func(ctx context.Context) (string, error) {
			calls++
			return "", context.Canceled
		})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
