package usecase

import (
	"context"
	"time"

	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/platform/logging"
)

type DailyRunner interface {
	RunDaily(ctx context.Context, now time.Time) ([]DateRunResult, error)
}

type SchedulerConfig struct {
	Enabled bool
	// Fire time in UTC.
	Hour   int
	Minute int
	// CheckInterval is how often the loop wakes up to compare clocks.
	CheckInterval time.Duration
}

func NormalizeSchedulerConfig(cfg SchedulerConfig) SchedulerConfig {
	if cfg.Hour < 0 || cfg.Hour > 23 {
		cfg.Hour = 0
	}
	if cfg.Minute < 0 || cfg.Minute > 59 {
		cfg.Minute = 1
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	return cfg
}

// DailyScheduler fires the runner once per UTC day at the configured
// wall-clock minute. It never fires twice for the same day even when the
// loop wakes up more than once inside the target minute.
type DailyScheduler struct {
	runner DailyRunner
	cfg    SchedulerConfig
	logger *logging.Logger
	now    func() time.Time

	lastFiredDay string
}

func NewDailyScheduler(runner DailyRunner, cfg SchedulerConfig, logger *logging.Logger) *DailyScheduler {
	if logger == nil {
		logger = logging.Default()
	}

	return &DailyScheduler{
		runner: runner,
		cfg:    NormalizeSchedulerConfig(cfg),
		logger: logger,
		now:    time.Now,
	}
}

// Run blocks until the context is cancelled.
func (s *DailyScheduler) Run(ctx context.Context) {
	if !s.cfg.Enabled || s.runner == nil {
		s.logger.InfoContext(ctx, "daily scheduler is disabled")
		return
	}

	s.logger.InfoContext(ctx, "daily scheduler started",
		"fire_hour_utc", s.cfg.Hour,
		"fire_minute_utc", s.cfg.Minute,
	)

	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "daily scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *DailyScheduler) tick(ctx context.Context) {
	now := s.now().UTC()
	if !s.shouldFire(now) {
		return
	}
	s.lastFiredDay = fixture.DateKey(now)

	s.logger.InfoContext(ctx, "daily scheduler firing", "date", s.lastFiredDay)
	results, err := s.runner.RunDaily(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled daily run failed", "date", s.lastFiredDay, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled daily run finished", "date", s.lastFiredDay, "date_count", len(results))
}

func (s *DailyScheduler) shouldFire(now time.Time) bool {
	if now.Hour() != s.cfg.Hour || now.Minute() != s.cfg.Minute {
		return false
	}
	return fixture.DateKey(now) != s.lastFiredDay
}
