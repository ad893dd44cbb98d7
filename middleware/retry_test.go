package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/metahub/core/errors"
	"github.com/kart-io/metahub/logger"
)

func newTestPolicy(maxAttempts int) *RetryPolicy {
	p := NewRetryPolicy(maxAttempts, time.Millisecond, logger.Discard)
	p.SetBackoffFunc(ConstantBackoff)
	return p
}

func TestRetryPolicy_SucceedsAfterTransientFailures(t *testing.T) {
	p := newTestPolicy(3)

	calls := 0
	err := p.Do(context.Background(), "send_message", "facebook", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New(errors.CodeAPIError, errors.CategoryUpstream, "upstream unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	p := newTestPolicy(3)

	transient := errors.New(errors.CodeNetworkError, errors.CategoryUpstream, "connection reset")
	calls := 0
	err := p.Do(context.Background(), "send_message", "facebook", func(ctx context.Context) error {
		calls++
		return transient
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Same(t, transient, err)
}

func TestRetryPolicy_NonRetryableStopsImmediately(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"auth failure", errors.New(errors.CodeAuthFailed, errors.CategoryAuth, "invalid token")},
		{"validation failure", errors.NewValidation("recipient_id is required")},
		{"unsupported operation", errors.NewUnsupported("whatsapp", "post_content")},
		{"plain error", context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPolicy(3)
			calls := 0
			err := p.Do(context.Background(), "post_content", "whatsapp", func(ctx context.Context) error {
				calls++
				return tt.err
			})
			assert.Equal(t, tt.err, err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestRetryPolicy_HonorsRetryAfterHint(t *testing.T) {
	p := newTestPolicy(2)
	p.SetBackoffFunc(func(attempt int, base time.Duration) time.Duration {
		return time.Hour // the hint must win over the computed delay
	})
	p.SetMaxDelay(time.Second)

	rateLimited := errors.New(errors.CodeRateLimited, errors.CategoryUpstream, "too many requests")
	rateLimited.RetryAfter = 10 * time.Millisecond

	start := time.Now()
	calls := 0
	err := p.Do(context.Background(), "get_analytics", "instagram", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return rateLimited
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestRetryPolicy_DelayCappedAtMaxDelay(t *testing.T) {
	p := newTestPolicy(3)
	p.SetMaxDelay(5 * time.Millisecond)
	p.SetBackoffFunc(func(attempt int, base time.Duration) time.Duration {
		return time.Hour
	})

	start := time.Now()
	calls := 0
	_ = p.Do(context.Background(), "send_message", "facebook", func(ctx context.Context) error {
		calls++
		return errors.New(errors.CodeAPIError, errors.CategoryUpstream, "flapping")
	})

	assert.Equal(t, 3, calls)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryPolicy_CancellationStopsRetries(t *testing.T) {
	p := NewRetryPolicy(5, time.Minute, logger.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	transient := errors.New(errors.CodeNetworkError, errors.CategoryUpstream, "timeout")

	calls := 0
	err := p.Do(ctx, "get_messages", "facebook", func(ctx context.Context) error {
		calls++
		cancel()
		return transient
	})

	assert.Equal(t, 1, calls)
	assert.Same(t, transient, err, "cancellation surfaces the last normalized error")
}

func TestRetryPolicy_ObserverSeesEachRetry(t *testing.T) {
	p := newTestPolicy(3)

	var seen []int
	p.SetOnRetry(func(operation, platform string, attempt int) {
		assert.Equal(t, "send_message", operation)
		assert.Equal(t, "instagram", platform)
		seen = append(seen, attempt)
	})

	_ = p.Do(context.Background(), "send_message", "instagram", func(ctx context.Context) error {
		return errors.New(errors.CodeAPIError, errors.CategoryUpstream, "boom")
	})

	assert.Equal(t, []int{1, 2}, seen)
}

func TestExponentialBackoff_GrowsWithAttempt(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 1; attempt <= 4; attempt++ {
		delay := ExponentialBackoff(attempt, base)
		expected := float64(base) * float64(int(1)<<(attempt-1))
		assert.InDelta(t, expected, float64(delay), expected*0.3, "attempt %d", attempt)
	}
}
