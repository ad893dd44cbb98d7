// Package middleware provides the retry/backoff policy the dispatch router
// wraps every adapter call in.
package middleware

import (
	"context"
	"math"
	"time"

	"github.com/kart-io/metahub/core/errors"
	"github.com/kart-io/metahub/logger"
)

// Default policy bounds
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
	DefaultMaxDelay    = 30 * time.Second
)

// BackoffFunc computes the wait before the next attempt. attempt counts
// the failures so far, starting at 1.
type BackoffFunc func(attempt int, baseDelay time.Duration) time.Duration

// RetryPolicy retries transient failures with bounded exponential backoff.
// Non-retryable errors (auth, validation, capability, configuration)
// propagate after a single attempt; the final error always surfaces
// unchanged, never downgraded or wrapped.
type RetryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	backoff     BackoffFunc
	logger      logger.Interface

	// onRetry, when set, observes each scheduled retry; used for metrics
	onRetry func(operation string, platform string, attempt int)
}

// NewRetryPolicy creates a policy with maxAttempts total attempts
func NewRetryPolicy(maxAttempts int, baseDelay time.Duration, log logger.Interface) *RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if log == nil {
		log = logger.Discard
	}
	return &RetryPolicy{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    DefaultMaxDelay,
		backoff:     ExponentialBackoff,
		logger:      log,
	}
}

// SetBackoffFunc sets a custom backoff function
func (p *RetryPolicy) SetBackoffFunc(fn BackoffFunc) {
	p.backoff = fn
}

// SetMaxDelay sets the cap on the delay between attempts
func (p *RetryPolicy) SetMaxDelay(maxDelay time.Duration) {
	p.maxDelay = maxDelay
}

// SetOnRetry installs a retry observer
func (p *RetryPolicy) SetOnRetry(fn func(operation string, platform string, attempt int)) {
	p.onRetry = fn
}

// MaxAttempts returns the attempt bound
func (p *RetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

// Do runs fn up to the attempt bound. The backoff wait holds no locks and
// selects on ctx, so an abandoned call stops before its next attempt; an
// attempt already in flight is allowed to finish.
func (p *RetryPolicy) Do(ctx context.Context, operation, platform string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !errors.IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == p.maxAttempts {
			break
		}

		delay := p.delayFor(attempt, lastErr)
		p.logger.Warn(ctx, "retrying after transient failure",
			"operation", operation, "platform", platform, "attempt", attempt, "delay", delay)
		if p.onRetry != nil {
			p.onRetry(operation, platform, attempt)
		}

		select {
		case <-ctx.Done():
			// The caller is gone; surface the last normalized error
			// rather than spending another attempt.
			return lastErr
		case <-time.After(delay):
		}
	}

	p.logger.Error(ctx, "retry budget exhausted",
		"operation", operation, "platform", platform, "attempts", p.maxAttempts, "error", lastErr)
	return lastErr
}

// delayFor computes the next wait, honoring an upstream Retry-After hint
// when one was provided (429 responses), capped either way.
func (p *RetryPolicy) delayFor(attempt int, err error) time.Duration {
	delay := p.backoff(attempt, p.baseDelay)
	if hint := errors.RetryAfterHint(err); hint > 0 {
		delay = hint
	}
	if delay > p.maxDelay {
		delay = p.maxDelay
	}
	return delay
}

// ExponentialBackoff doubles the delay each attempt with up to 25% jitter
func ExponentialBackoff(attempt int, baseDelay time.Duration) time.Duration {
	delay := float64(baseDelay) * math.Pow(2, float64(attempt-1))
	jitter := delay * 0.25 * (0.5 - float64(time.Now().UnixNano()%2)/2)
	return time.Duration(delay + jitter)
}

// ConstantBackoff waits the base delay every attempt
func ConstantBackoff(attempt int, baseDelay time.Duration) time.Duration {
	return baseDelay
}
