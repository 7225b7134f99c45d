package resilience

import (
	"context"
	"strings"
	"time"
)

// RetryConfig holds configuration for retry logic
type RetryConfig struct {
	MaxAttempts       int           // Maximum number of attempts (including the first)
	InitialBackoff    time.Duration // Backoff before the second attempt
	MaxBackoff        time.Duration // Backoff ceiling
	BackoffMultiplier float64       // Multiplier for exponential backoff
}

// DefaultRetryConfig returns a default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        5 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryableFunc is a function that can be retried
type RetryableFunc func() error

// IsRetryableError decides whether an error is worth another attempt
type IsRetryableError func(error) bool

// Retry executes fn with exponential backoff until it succeeds, the
// attempts are exhausted, or the context is cancelled. A nil isRetryable
// retries every error.
func Retry(ctx context.Context, fn RetryableFunc, config *RetryConfig, isRetryable IsRetryableError) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	backoff := config.InitialBackoff

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if isRetryable != nil && !isRetryable(err) {
			return err
		}

		// Don't sleep after the last attempt
		if attempt < config.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}

			backoff = time.Duration(float64(backoff) * config.BackoffMultiplier)
			if backoff > config.MaxBackoff {
				backoff = config.MaxBackoff
			}
		}
	}

	return lastErr
}

// IsRetryableNetworkError checks if an error looks like a transient
// network or service failure.
func IsRetryableNetworkError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"network is unreachable",
		"no route to host",
		"deadline exceeded",
		"timeout",
		"i/o timeout",
		"unavailable",
		"too many connections",
		"rate limit",
	} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}
