// Package transport implements the rate-limited retry policy shared by all
// outbound GitHub API calls.
package transport

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryConfig holds configuration for the retry loop.
type RetryConfig struct {
	// MaxRetries bounds the number of additional attempts after the first.
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultRetryConfig returns the gate's retry configuration: up to three
// retries of a primary rate limit, nothing else.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     32 * time.Second,
		Multiplier:     2.0,
	}
}

// Logger is the subset of logging the retry loop needs.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// ShouldRetry decides whether a failed attempt is retried. Only primary
// rate limits are retryable, and only while retryCount has not passed 2;
// secondary limits indicate a policy violation that waiting will not fix.
func ShouldRetry(err error, retryCount int) bool {
	var terr *Error
	if !errors.As(err, &terr) {
		return false
	}
	if !terr.IsPrimaryRateLimit() {
		return false
	}
	return retryCount <= 2
}

// backoff calculates the wait before the given attempt, used when the
// server suggested no delay.
func backoff(attempt int, config RetryConfig) time.Duration {
	d := float64(config.InitialBackoff) * math.Pow(config.Multiplier, float64(attempt))
	if d > float64(config.MaxBackoff) {
		d = float64(config.MaxBackoff)
	}
	return time.Duration(d)
}

// Operation is a function that can be retried.
type Operation func(ctx context.Context) error

// Do executes an operation under the rate-limit retry policy. The
// server-suggested Retry-After delay is honored when present; otherwise
// exponential backoff applies. Secondary rate limits are logged and
// propagated without retrying.
func Do(ctx context.Context, operation Operation, config RetryConfig, log Logger) error {
	var lastErr error

	for retryCount := 0; retryCount <= config.MaxRetries; retryCount++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var terr *Error
		if errors.As(err, &terr) && terr.IsSecondaryRateLimit() && log != nil {
			log.Warnf("secondary rate limit hit; not retrying: %s", terr.Message)
		}

		if !ShouldRetry(err, retryCount) {
			return err
		}
		if retryCount >= config.MaxRetries {
			return err
		}

		wait := backoff(retryCount, config)
		if errors.As(err, &terr) && terr.RetryAfter > 0 {
			wait = terr.RetryAfter
		}
		if log != nil {
			log.Warnf("primary rate limit hit; retry %d in %s", retryCount+1, wait)
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
