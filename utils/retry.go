package utils

import (
	"context"
	"time"
)

// RetryPolicy describes how many times an operation is attempted and how long
// to wait between attempts. Backoff receives the 1-based attempt number of
// the attempt that just failed.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// LinearBackoff waits base * attempt between attempts.
func LinearBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// WithRetry runs op until it succeeds or the policy is exhausted, returning
// the last error. Context cancellation aborts the wait between attempts.
func WithRetry(ctx context.Context, policy RetryPolicy, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if attempt == policy.MaxAttempts {
			break
		}
		var wait time.Duration
		if policy.Backoff != nil {
			wait = policy.Backoff(attempt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}
