package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/majorleague"
	"github.com/codrut-p/matchday/internal/domain/prediction"
	"github.com/codrut-p/matchday/internal/platform/logging"
	"github.com/codrut-p/matchday/internal/platform/resilience"
)

type IngestMode string

const (
	IngestModeFixtures    IngestMode = "fixtures"
	IngestModePredictions IngestMode = "predictions"
	IngestModeAll         IngestMode = "all"
)

func ParseIngestMode(raw string) (IngestMode, error) {
	switch IngestMode(raw) {
	case IngestModeFixtures, IngestModePredictions, IngestModeAll:
		return IngestMode(raw), nil
	default:
		return "", fmt.Errorf("%w: mode must be fixtures, predictions or all", ErrInvalidInput)
	}
}

type IngestionConfig struct {
	// BatchSize caps in-flight prediction fetches; the provider rate
	// limit is the reason both it and the delays exist.
	BatchSize    int
	BatchDelay   time.Duration
	DateDelay    time.Duration
	ScheduleDays int
	Retry        resilience.RetryConfig
}

func NormalizeIngestionConfig(cfg IngestionConfig) IngestionConfig {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = time.Second
	}
	if cfg.DateDelay <= 0 {
		cfg.DateDelay = 5 * time.Second
	}
	if cfg.ScheduleDays <= 0 {
		cfg.ScheduleDays = 3
	}
	cfg.Retry = resilience.NormalizeRetryConfig(cfg.Retry)
	return cfg
}

type FixtureIngestResult struct {
	Date          string `json:"date"`
	ProviderCount int    `json:"provider_count"`
	StoredCount   int    `json:"stored_count"`
	FailedCount   int    `json:"failed_count"`
}

type PredictionIngestResult struct {
	RequestedCount   int     `json:"requested_count"`
	SuccessCount     int     `json:"success_count"`
	FailedFixtureIDs []int64 `json:"failed_fixture_ids"`
}

type DateRunResult struct {
	Date        string                  `json:"date"`
	Mode        IngestMode              `json:"mode"`
	Fixtures    *FixtureIngestResult    `json:"fixtures,omitempty"`
	Predictions *PredictionIngestResult `json:"predictions,omitempty"`
}

type DeleteByDateResult struct {
	Date               string `json:"date"`
	FixturesDeleted    int    `json:"fixtures_deleted"`
	PredictionsDeleted int    `json:"predictions_deleted"`
}

type IngestionService struct {
	provider       StatsProvider
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	majorLeagues   *majorleague.Filter
	cfg            IngestionConfig
	logger         *logging.Logger
}

func NewIngestionService(
	provider StatsProvider,
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
	majorLeagues *majorleague.Filter,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		provider:       provider,
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		majorLeagues:   majorLeagues,
		cfg:            NormalizeIngestionConfig(cfg),
		logger:         logger,
	}
}

// IngestFixturesByDate fetches the provider's fixture list for one day and
// upserts each row concurrently. Records the provider returns with missing
// required fields are skipped and counted, never fatal for the run.
func (s *IngestionService) IngestFixturesByDate(ctx context.Context, date time.Time) (FixtureIngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestFixturesByDate")
	defer span.End()

	if s.provider == nil || s.fixtureRepo == nil {
		return FixtureIngestResult{}, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	dateKey := fixture.DateKey(date)
	result := FixtureIngestResult{Date: dateKey}

	var items []ExternalFixture
	err := resilience.Retry(ctx, s.cfg.Retry, func(ctx context.Context) error {
		fetched, fetchErr := s.provider.FetchFixturesByDate(ctx, date)
		if fetchErr != nil {
			return fetchErr
		}
		items = fetched
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("%w: fetch fixtures date=%s: %v", ErrProvider, dateKey, err)
	}
	result.ProviderCount = len(items)

	var stored atomic.Int32
	var failed atomic.Int32

	var wg conc.WaitGroup
	for _, item := range items {
		mapped, mapErr := mapExternalFixtureToDomain(item)
		if mapErr != nil {
			failed.Add(1)
			s.logger.WarnContext(ctx, "skip fixture with unmappable payload", "date", dateKey, "error", mapErr)
			continue
		}

		wg.Go(func() {
			upsertErr := resilience.Retry(ctx, s.cfg.Retry, func(ctx context.Context) error {
				return s.fixtureRepo.Upsert(ctx, mapped)
			})
			if upsertErr != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "store fixture failed", "fixture_id", mapped.FixtureID, "date", dateKey, "error", upsertErr)
				return
			}
			stored.Add(1)
		})
	}
	wg.Wait()

	result.StoredCount = int(stored.Load())
	result.FailedCount = int(failed.Load())

	s.logger.InfoContext(ctx, "fixture ingestion finished",
		"date", dateKey,
		"provider_count", result.ProviderCount,
		"stored_count", result.StoredCount,
		"failed_count", result.FailedCount,
	)
	return result, nil
}

// IngestPredictions processes fixture ids in fixed-size batches with a
// pause between batches. A fixture ends up in FailedFixtureIDs when the
// provider errors out after retries, returns an empty payload, or the
// store rejects the rows.
func (s *IngestionService) IngestPredictions(ctx context.Context, fixtureIDs []int64) (PredictionIngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestPredictions")
	defer span.End()

	if s.provider == nil || s.predictionRepo == nil {
		return PredictionIngestResult{}, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	result := PredictionIngestResult{RequestedCount: len(fixtureIDs)}
	if len(fixtureIDs) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.cfg.BatchSize)
	if err != nil {
		return PredictionIngestResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int32
	failedIDs := make(chan int64, len(fixtureIDs))

	for start := 0; start < len(fixtureIDs); start += s.cfg.BatchSize {
		if start > 0 {
			if err := sleepCtx(ctx, s.cfg.BatchDelay); err != nil {
				return PredictionIngestResult{}, err
			}
		}

		end := start + s.cfg.BatchSize
		if end > len(fixtureIDs) {
			end = len(fixtureIDs)
		}

		var workers sync.WaitGroup
		for _, fixtureID := range fixtureIDs[start:end] {
			fixtureID := fixtureID
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				if err := s.ingestPredictionForFixture(ctx, fixtureID); err != nil {
					s.logger.WarnContext(ctx, "prediction ingestion failed", "fixture_id", fixtureID, "error", err)
					failedIDs <- fixtureID
					return
				}
				successCount.Add(1)
			}); err != nil {
				workers.Done()
				return PredictionIngestResult{}, fmt.Errorf("submit prediction task: %w", err)
			}
		}
		workers.Wait()
	}
	close(failedIDs)

	for id := range failedIDs {
		result.FailedFixtureIDs = append(result.FailedFixtureIDs, id)
	}
	sort.Slice(result.FailedFixtureIDs, func(i, j int) bool {
		return result.FailedFixtureIDs[i] < result.FailedFixtureIDs[j]
	})
	result.SuccessCount = int(successCount.Load())

	s.logger.InfoContext(ctx, "prediction ingestion finished",
		"requested_count", result.RequestedCount,
		"success_count", result.SuccessCount,
		"failed_count", len(result.FailedFixtureIDs),
	)
	return result, nil
}

func (s *IngestionService) ingestPredictionForFixture(ctx context.Context, fixtureID int64) error {
	var bundle *ExternalPredictionBundle
	err := resilience.Retry(ctx, s.cfg.Retry, func(ctx context.Context) error {
		fetched, fetchErr := s.provider.FetchPredictionByFixture(ctx, fixtureID)
		if fetchErr != nil {
			return fetchErr
		}
		bundle = fetched
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: fetch prediction fixture=%d: %v", ErrProvider, fixtureID, err)
	}
	if bundle == nil {
		return fmt.Errorf("%w: provider returned no prediction for fixture=%d", ErrProvider, fixtureID)
	}

	bundle.FixtureID = fixtureID
	mapped, err := mapExternalPredictionToDomain(*bundle)
	if err != nil {
		return err
	}
	stats := prediction.BuildStats(fixtureID,
		externalFormToCounters(bundle.HomeForm),
		externalFormToCounters(bundle.AwayForm),
	)

	if err := resilience.Retry(ctx, s.cfg.Retry, func(ctx context.Context) error {
		return s.predictionRepo.Upsert(ctx, mapped)
	}); err != nil {
		return fmt.Errorf("%w: upsert prediction fixture=%d: %v", ErrStore, fixtureID, err)
	}
	if err := resilience.Retry(ctx, s.cfg.Retry, func(ctx context.Context) error {
		return s.predictionRepo.UpsertStats(ctx, stats)
	}); err != nil {
		return fmt.Errorf("%w: upsert prediction stats fixture=%d: %v", ErrStore, fixtureID, err)
	}

	return nil
}

// IngestPredictionsByDate targets the stored fixtures of the major
// leagues for one day.
func (s *IngestionService) IngestPredictionsByDate(ctx context.Context, date time.Time) (PredictionIngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestPredictionsByDate")
	defer span.End()

	if s.fixtureRepo == nil {
		return PredictionIngestResult{}, fmt.Errorf("%w: fixture store is not configured", ErrDependencyUnavailable)
	}

	var leagueIDs []int64
	if s.majorLeagues != nil {
		leagueIDs = s.majorLeagues.IDs()
	}

	fixtures, err := s.fixtureRepo.ListByDate(ctx, date, leagueIDs)
	if err != nil {
		return PredictionIngestResult{}, fmt.Errorf("%w: list fixtures date=%s: %v", ErrStore, fixture.DateKey(date), err)
	}

	fixtureIDs := make([]int64, 0, len(fixtures))
	for _, item := range fixtures {
		fixtureIDs = append(fixtureIDs, item.FixtureID)
	}

	return s.IngestPredictions(ctx, fixtureIDs)
}

// RunForDate is the manual trigger entry point and the unit the daily
// schedule is built from.
func (s *IngestionService) RunForDate(ctx context.Context, date time.Time, mode IngestMode) (DateRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RunForDate")
	defer span.End()

	result := DateRunResult{Date: fixture.DateKey(date), Mode: mode}

	switch mode {
	case IngestModeFixtures:
		fixtures, err := s.IngestFixturesByDate(ctx, date)
		if err != nil {
			return result, err
		}
		result.Fixtures = &fixtures
	case IngestModePredictions:
		predictions, err := s.IngestPredictionsByDate(ctx, date)
		if err != nil {
			return result, err
		}
		result.Predictions = &predictions
	case IngestModeAll:
		fixtures, err := s.IngestFixturesByDate(ctx, date)
		if err != nil {
			return result, err
		}
		result.Fixtures = &fixtures

		predictions, err := s.IngestPredictionsByDate(ctx, date)
		if err != nil {
			return result, err
		}
		result.Predictions = &predictions
	default:
		return result, fmt.Errorf("%w: mode must be fixtures, predictions or all", ErrInvalidInput)
	}

	return result, nil
}

// RunDaily covers today plus the following days with a pause between
// dates. One failing date does not stop the remaining dates.
func (s *IngestionService) RunDaily(ctx context.Context, now time.Time) ([]DateRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RunDaily")
	defer span.End()

	results := make([]DateRunResult, 0, s.cfg.ScheduleDays)
	for i := 0; i < s.cfg.ScheduleDays; i++ {
		if i > 0 {
			if err := sleepCtx(ctx, s.cfg.DateDelay); err != nil {
				return results, err
			}
		}

		target := now.UTC().AddDate(0, 0, i)
		result, err := s.RunForDate(ctx, target, IngestModeAll)
		if err != nil {
			s.logger.ErrorContext(ctx, "daily run failed for date", "date", fixture.DateKey(target), "error", err)
		}
		results = append(results, result)
	}

	return results, nil
}

// DeleteFixturesByDate removes a day's fixtures together with their
// predictions and derived stats. Operator tooling only.
func (s *IngestionService) DeleteFixturesByDate(ctx context.Context, date time.Time) (DeleteByDateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.DeleteFixturesByDate")
	defer span.End()

	dateKey := fixture.DateKey(date)
	result := DeleteByDateResult{Date: dateKey}

	fixtures, err := s.fixtureRepo.ListByDate(ctx, date, nil)
	if err != nil {
		return result, fmt.Errorf("%w: list fixtures date=%s: %v", ErrStore, dateKey, err)
	}

	fixtureIDs := make([]int64, 0, len(fixtures))
	for _, item := range fixtures {
		fixtureIDs = append(fixtureIDs, item.FixtureID)
	}

	if len(fixtureIDs) > 0 {
		deleted, err := s.predictionRepo.DeleteByFixtureIDs(ctx, fixtureIDs)
		if err != nil {
			return result, fmt.Errorf("%w: delete predictions date=%s: %v", ErrStore, dateKey, err)
		}
		result.PredictionsDeleted = deleted
	}

	deleted, err := s.fixtureRepo.DeleteByDate(ctx, date)
	if err != nil {
		return result, fmt.Errorf("%w: delete fixtures date=%s: %v", ErrStore, dateKey, err)
	}
	result.FixturesDeleted = deleted

	s.logger.InfoContext(ctx, "deleted ingested data for date",
		"date", dateKey,
		"fixtures_deleted", result.FixturesDeleted,
		"predictions_deleted", result.PredictionsDeleted,
	)
	return result, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
