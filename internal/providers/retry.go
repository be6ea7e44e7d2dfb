package providers

import (
	"context"
	"time"
)

// BackoffConfig configures retry backoff for retryable errors.
type BackoffConfig struct {
	InitialDelay time.Duration // Initial delay before first retry (default: 100ms)
	MaxDelay     time.Duration // Maximum delay between retries (default: 2s)
	MaxRetries   int           // Maximum number of retries (default: 2)
	Multiplier   float64       // Multiplier for exponential backoff (default: 2.0)
}

// withDefaults applies default values for unset fields.
func (c BackoffConfig) withDefaults() BackoffConfig {
	if c.InitialDelay == 0 {
		c.InitialDelay = 100 * time.Millisecond
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = 2 * time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 2
	}
	if c.Multiplier == 0 {
		c.Multiplier = 2.0
	}
	return c
}

// Retry runs fn with exponential backoff on retryable errors. Non-retryable
// errors (well-formed rejections, bad data) return immediately; context
// cancellation wins over any remaining attempts.
func Retry[T any](ctx context.Context, cfg BackoffConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}

			delay = time.Duration(float64(delay) * cfg.Multiplier)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}
	}

	return zero, lastErr
}
