// Package cache wraps the persistent repositories with read-through caching
// for the per-fixture lookups the public API serves on every page load.
// Date listings are cached one level up, in the query service, so the
// decorators here only hold single-fixture entries.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/codrut-p/matchday/internal/domain/aiprediction"
	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/prediction"
	basecache "github.com/codrut-p/matchday/internal/platform/cache"
)

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, fixtureByIDKey(item.FixtureID))
	return nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, fixtureByIDKey(fixtureID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureByID)
	return cached.value, cached.exists, nil
}

func (r *FixtureRepository) ListByDate(ctx context.Context, date time.Time, leagueIDs []int64) ([]fixture.Fixture, error) {
	return r.next.ListByDate(ctx, date, leagueIDs)
}

func (r *FixtureRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	return r.next.CountByDate(ctx, date)
}

func (r *FixtureRepository) DeleteByDate(ctx context.Context, date time.Time) (int, error) {
	deleted, err := r.next.DeleteByDate(ctx, date)
	if err != nil {
		return 0, err
	}
	// Fixture ids for the wiped day are gone, so drop every single-fixture
	// entry rather than tracking which ids the date held.
	r.cache.DeletePrefix(ctx, fixtureKeyPrefix)
	return deleted, nil
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}

type PredictionRepository struct {
	next  prediction.Repository
	cache *basecache.Store
}

func NewPredictionRepository(next prediction.Repository, cache *basecache.Store) *PredictionRepository {
	return &PredictionRepository{next: next, cache: cache}
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, predictionByFixtureKey(item.FixtureID))
	return nil
}

func (r *PredictionRepository) GetByFixtureID(ctx context.Context, fixtureID int64) (prediction.Prediction, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, predictionByFixtureKey(fixtureID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByFixtureID(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedPredictionByFixture{value: item, exists: exists}, nil
	})
	if err != nil {
		return prediction.Prediction{}, false, err
	}

	cached, _ := v.(cachedPredictionByFixture)
	return cached.value, cached.exists, nil
}

func (r *PredictionRepository) UpsertStats(ctx context.Context, item prediction.Stats) error {
	if err := r.next.UpsertStats(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, predictionStatsByFixtureKey(item.FixtureID))
	return nil
}

func (r *PredictionRepository) GetStatsByFixtureID(ctx context.Context, fixtureID int64) (prediction.Stats, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, predictionStatsByFixtureKey(fixtureID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetStatsByFixtureID(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedStatsByFixture{value: item, exists: exists}, nil
	})
	if err != nil {
		return prediction.Stats{}, false, err
	}

	cached, _ := v.(cachedStatsByFixture)
	return cached.value, cached.exists, nil
}

func (r *PredictionRepository) DeleteByFixtureIDs(ctx context.Context, fixtureIDs []int64) (int, error) {
	deleted, err := r.next.DeleteByFixtureIDs(ctx, fixtureIDs)
	if err != nil {
		return 0, err
	}
	for _, fixtureID := range fixtureIDs {
		r.cache.Delete(ctx, predictionByFixtureKey(fixtureID))
		r.cache.Delete(ctx, predictionStatsByFixtureKey(fixtureID))
	}
	return deleted, nil
}

type cachedPredictionByFixture struct {
	value  prediction.Prediction
	exists bool
}

type cachedStatsByFixture struct {
	value  prediction.Stats
	exists bool
}

type AIPredictionRepository struct {
	next  aiprediction.Repository
	cache *basecache.Store
}

func NewAIPredictionRepository(next aiprediction.Repository, cache *basecache.Store) *AIPredictionRepository {
	return &AIPredictionRepository{next: next, cache: cache}
}

func (r *AIPredictionRepository) Insert(ctx context.Context, item aiprediction.Prediction) (int64, error) {
	id, err := r.next.Insert(ctx, item)
	if err != nil {
		return 0, err
	}
	r.cache.Delete(ctx, aiListByFixtureKey(item.FixtureID))
	r.cache.Delete(ctx, aiExistsByFixtureKey(item.FixtureID))
	return id, nil
}

func (r *AIPredictionRepository) ExistsByFixtureID(ctx context.Context, fixtureID int64) (bool, error) {
	v, err := r.cache.GetOrLoad(ctx, aiExistsByFixtureKey(fixtureID), func(ctx context.Context) (any, error) {
		return r.next.ExistsByFixtureID(ctx, fixtureID)
	})
	if err != nil {
		return false, err
	}

	exists, _ := v.(bool)
	return exists, nil
}

func (r *AIPredictionRepository) ListByFixtureID(ctx context.Context, fixtureID int64) ([]aiprediction.Prediction, error) {
	v, err := r.cache.GetOrLoad(ctx, aiListByFixtureKey(fixtureID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByFixtureID(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return append([]aiprediction.Prediction(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]aiprediction.Prediction)
	return append([]aiprediction.Prediction(nil), items...), nil
}

const fixtureKeyPrefix = "fixture:id:"

func fixtureByIDKey(fixtureID int64) string {
	return fixtureKeyPrefix + strconv.FormatInt(fixtureID, 10)
}

func predictionByFixtureKey(fixtureID int64) string {
	return "prediction:fixture:" + strconv.FormatInt(fixtureID, 10)
}

func predictionStatsByFixtureKey(fixtureID int64) string {
	return "prediction-stats:fixture:" + strconv.FormatInt(fixtureID, 10)
}

func aiListByFixtureKey(fixtureID int64) string {
	return "ai-prediction:list:fixture:" + strconv.FormatInt(fixtureID, 10)
}

func aiExistsByFixtureKey(fixtureID int64) string {
	return "ai-prediction:exists:fixture:" + strconv.FormatInt(fixtureID, 10)
}
