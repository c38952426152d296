package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/majorleague"
	"github.com/codrut-p/matchday/internal/domain/prediction"
	"github.com/codrut-p/matchday/internal/platform/cache"
	"github.com/codrut-p/matchday/internal/platform/logging"
)

// FixtureQueryService serves the public read path. Date listings are
// cached; single-row lookups go straight to the store.
type FixtureQueryService struct {
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	majorLeagues   *majorleague.Filter
	listCache      *cache.Store
	logger         *logging.Logger
}

func NewFixtureQueryService(
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
	majorLeagues *majorleague.Filter,
	listCache *cache.Store,
	logger *logging.Logger,
) *FixtureQueryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureQueryService{
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		majorLeagues:   majorLeagues,
		listCache:      listCache,
		logger:         logger,
	}
}

func (s *FixtureQueryService) ListFixturesByDate(ctx context.Context, date time.Time, majorOnly bool) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureQueryService.ListFixturesByDate")
	defer span.End()

	var leagueIDs []int64
	if majorOnly {
		if s.majorLeagues == nil {
			return nil, fmt.Errorf("%w: major league filter is not configured", ErrDependencyUnavailable)
		}
		leagueIDs = s.majorLeagues.IDs()
	}

	load := func(ctx context.Context) (any, error) {
		items, err := s.fixtureRepo.ListByDate(ctx, date, leagueIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: list fixtures date=%s: %v", ErrStore, fixture.DateKey(date), err)
		}
		return items, nil
	}

	if s.listCache == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]fixture.Fixture), nil
	}

	key := fmt.Sprintf("fixtures:date:%s:major:%t", fixture.DateKey(date), majorOnly)
	value, err := s.listCache.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}
	return value.([]fixture.Fixture), nil
}

func (s *FixtureQueryService) GetFixture(ctx context.Context, fixtureID int64) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureQueryService.GetFixture")
	defer span.End()

	if fixtureID <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, ok, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: load fixture=%d: %v", ErrStore, fixtureID, err)
	}
	if !ok {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, fixtureID)
	}
	return item, nil
}

func (s *FixtureQueryService) GetPrediction(ctx context.Context, fixtureID int64) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureQueryService.GetPrediction")
	defer span.End()

	if fixtureID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, ok, err := s.predictionRepo.GetByFixtureID(ctx, fixtureID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: load prediction fixture=%d: %v", ErrStore, fixtureID, err)
	}
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction for fixture=%d", ErrNotFound, fixtureID)
	}
	return item, nil
}

func (s *FixtureQueryService) GetPredictionStats(ctx context.Context, fixtureID int64) (prediction.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureQueryService.GetPredictionStats")
	defer span.End()

	if fixtureID <= 0 {
		return prediction.Stats{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, ok, err := s.predictionRepo.GetStatsByFixtureID(ctx, fixtureID)
	if err != nil {
		return prediction.Stats{}, fmt.Errorf("%w: load prediction stats fixture=%d: %v", ErrStore, fixtureID, err)
	}
	if !ok {
		return prediction.Stats{}, fmt.Errorf("%w: prediction stats for fixture=%d", ErrNotFound, fixtureID)
	}
	return item, nil
}

// InvalidateDate drops cached listings after a write for the date.
func (s *FixtureQueryService) InvalidateDate(ctx context.Context, date time.Time) {
	if s.listCache == nil {
		return
	}
	s.listCache.DeletePrefix(ctx, "fixtures:date:"+fixture.DateKey(date))
}
