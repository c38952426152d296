package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type stubDailyRunner struct {
	runs atomic.Int32
}

func (s *stubDailyRunner) RunDaily(_ context.Context, _ time.Time) ([]DateRunResult, error) {
	s.runs.Add(1)
	return nil, nil
}

func TestDailyScheduler_FiresOncePerDay(t *testing.T) {
	t.Parallel()

	runner := &stubDailyRunner{}
	sched := NewDailyScheduler(runner, SchedulerConfig{Enabled: true, Hour: 0, Minute: 1}, nil)

	fireTime := time.Date(2026, 8, 28, 0, 1, 10, 0, time.UTC)
	sched.now = func() time.Time { return fireTime }

	sched.tick(context.Background())
	if got := runner.runs.Load(); got != 1 {
		t.Fatalf("runs = %d after first tick, want 1", got)
	}

	// Same minute, second wakeup.
	sched.now = func() time.Time { return fireTime.Add(30 * time.Second) }
	sched.tick(context.Background())
	if got := runner.runs.Load(); got != 1 {
		t.Fatalf("runs = %d after repeat tick, want 1", got)
	}

	// Wrong minute.
	sched.now = func() time.Time { return fireTime.Add(5 * time.Minute) }
	sched.tick(context.Background())
	if got := runner.runs.Load(); got != 1 {
		t.Fatalf("runs = %d outside fire window, want 1", got)
	}

	// Next day fires again.
	sched.now = func() time.Time { return fireTime.AddDate(0, 0, 1) }
	sched.tick(context.Background())
	if got := runner.runs.Load(); got != 2 {
		t.Fatalf("runs = %d on next day, want 2", got)
	}
}

func TestDailyScheduler_DisabledNeverRuns(t *testing.T) {
	t.Parallel()

	runner := &stubDailyRunner{}
	sched := NewDailyScheduler(runner, SchedulerConfig{Enabled: false}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sched.Run(ctx)

	if got := runner.runs.Load(); got != 0 {
		t.Fatalf("runs = %d for disabled scheduler, want 0", got)
	}
}

func TestNormalizeSchedulerConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NormalizeSchedulerConfig(SchedulerConfig{Hour: -1, Minute: 75})
	if cfg.Hour != 0 || cfg.Minute != 1 {
		t.Fatalf("fire time = %02d:%02d, want 00:01", cfg.Hour, cfg.Minute)
	}
	if cfg.CheckInterval != time.Minute {
		t.Fatalf("check interval = %v, want 1m", cfg.CheckInterval)
	}
}
