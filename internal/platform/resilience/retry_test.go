package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryStopsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	attempts := 0
	wantErr := errors.New("boom")
	err := Retry(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}, func(context.Context) error {
		attempts++
		return wantErr
	})
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestRetrySucceedsMidway(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := Retry(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}, func(context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := Retry(ctx, RetryConfig{MaxAttempts: 5, Delay: 50 * time.Millisecond}, func(context.Context) error {
		attempts++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestNormalizeRetryConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NormalizeRetryConfig(RetryConfig{})
	if cfg.MaxAttempts != 3 {
		t.Fatalf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.Delay != 0 {
		t.Fatalf("Delay = %v, want 0 preserved", cfg.Delay)
	}

	cfg = NormalizeRetryConfig(RetryConfig{MaxAttempts: -1, Delay: -time.Second})
	if cfg.MaxAttempts != 3 || cfg.Delay != time.Second {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}
