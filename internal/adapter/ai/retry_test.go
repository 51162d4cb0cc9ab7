package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     5 * time.Millisecond,
	}
}

func TestRetrySuccessOnSecondAttempt(t *testing.T) {
	attempts := 0
	err := testPolicy().Execute(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetryExhausted(t *testing.T) {
	attempts := 0
	err := testPolicy().Execute(context.Background(), func() error {
		attempts++
		return errors.New("connection reset")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryNonRetryableStopsImmediately(t *testing.T) {
	attempts := 0
	err := testPolicy().Execute(context.Background(), func() error {
		attempts++
		return errors.New("AI API error [400]: bad request")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testPolicy().Execute(ctx, func() error {
		return errors.New("timeout waiting for server")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err       error
		retryable bool
	}{
		{errors.New("request timeout"), true},
		{errors.New("connection refused"), true},
		{errors.New("AI API error [503]: overloaded"), true},
		{errors.New("AI API error [400]: invalid"), false},
		{ErrNotConfigured, false},
		{nil, false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.retryable {
			t.Fatalf("IsRetryable(%v) = %v, want %v", c.err, got, c.retryable)
		}
	}
}
