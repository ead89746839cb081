// Package retry runs a function until it succeeds, the attempts run out
// or the context ends.
package retry

import (
	"context"
	"errors"
	"time"
)

// Func is a retryable unit of work. It must respect ctx.
type Func func(ctx context.Context) error

// RetryIf reports whether err should trigger another attempt.
type RetryIf func(error) bool

// Backoff returns the wait before retry number attempt (0-based).
type Backoff func(attempt int) time.Duration

// Fixed waits the same interval between attempts.
func Fixed(interval time.Duration) Backoff {
	return func(int) time.Duration { return interval }
}

// Exponential doubles base on every attempt, capped at max when max > 0.
func Exponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base << uint(attempt)
		if d <= 0 || (max > 0 && d > max) {
			return max
		}
		return d
	}
}

type config struct {
	maxAttempts int
	backoff     Backoff
	retryIf     RetryIf
	onRetry     func(attempt int, err error)
}

// Option configures Do.
type Option func(*config)

// WithMaxAttempts sets the total number of attempts, the first one included.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

func WithRetryIf(fn RetryIf) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// OnRetry is called after every failed attempt that will be retried.
func OnRetry(fn func(attempt int, err error)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}

// Do executes fn until it returns nil or a non-retryable error, or until
// the attempts are exhausted. The last error is returned.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	cfg := &config{
		maxAttempts: 3,
		backoff:     Fixed(time.Second),
		retryIf:     IsRetryableError,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !cfg.retryIf(lastErr) || attempt == cfg.maxAttempts-1 {
			return lastErr
		}
		if cfg.onRetry != nil {
			cfg.onRetry(attempt+1, lastErr)
		}

		wait := cfg.backoff(attempt)
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return lastErr
}

// IsRetryableError retries everything except context cancellation.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
