package ai

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("AI client not configured: missing API key")

// RetryPolicy implements exponential backoff for transient API failures.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// DefaultRetryPolicy returns the production retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		Multiplier:   2.0,
		MaxDelay:     10 * time.Second,
	}
}

// Execute runs operation, retrying retryable failures with exponential
// backoff until MaxAttempts is reached or the context is cancelled.
// Non-retryable failures are returned immediately.
func (p RetryPolicy) Execute(ctx context.Context, operation func() error) error {
	delay := p.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if attempt >= p.MaxAttempts || !IsRetryable(err) {
			if attempt > 1 {
				log.Printf("ERROR: request failed after %d attempts: %v", attempt, err)
			}
			return err
		}

		log.Printf("WARN: request failed (attempt %d/%d): %v. Retrying in %s...",
			attempt, p.MaxAttempts, err, delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * p.Multiplier)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}

// IsRetryable reports whether an error looks like a transient network or
// server failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotConfigured) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "[500]") ||
		strings.Contains(msg, "[502]") ||
		strings.Contains(msg, "[503]") ||
		strings.Contains(msg, "[504]")
}
