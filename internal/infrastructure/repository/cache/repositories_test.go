package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codrut-p/matchday/internal/domain/aiprediction"
	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/prediction"
	basecache "github.com/codrut-p/matchday/internal/platform/cache"
)

type countingFixtureRepo struct {
	getCalls int
	items    map[int64]fixture.Fixture
}

func (r *countingFixtureRepo) Upsert(_ context.Context, item fixture.Fixture) error {
	if r.items == nil {
		r.items = map[int64]fixture.Fixture{}
	}
	r.items[item.FixtureID] = item
	return nil
}

func (r *countingFixtureRepo) GetByID(_ context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	r.getCalls++
	item, ok := r.items[fixtureID]
	return item, ok, nil
}

func (r *countingFixtureRepo) ListByDate(_ context.Context, _ time.Time, _ []int64) ([]fixture.Fixture, error) {
	return nil, nil
}

func (r *countingFixtureRepo) CountByDate(_ context.Context, _ time.Time) (int, error) {
	return len(r.items), nil
}

func (r *countingFixtureRepo) DeleteByDate(_ context.Context, _ time.Time) (int, error) {
	deleted := len(r.items)
	r.items = nil
	return deleted, nil
}

func TestCachedFixtureRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	inner := &countingFixtureRepo{}
	repo := NewFixtureRepository(inner, basecache.NewStore(time.Minute))

	require.NoError(t, repo.Upsert(ctx, fixture.Fixture{FixtureID: 101, HomeTeamName: "Manchester United"}))

	item, exists, err := repo.GetByID(ctx, 101)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, "Manchester United", item.HomeTeamName)

	_, _, err = repo.GetByID(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, 1, inner.getCalls, "second read must come from cache")

	// A fresh upsert drops the cached entry.
	require.NoError(t, repo.Upsert(ctx, fixture.Fixture{FixtureID: 101, HomeTeamName: "Liverpool"}))
	item, _, err = repo.GetByID(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, "Liverpool", item.HomeTeamName)
	require.Equal(t, 2, inner.getCalls)
}

func TestCachedFixtureRepository_DeleteByDateDropsEntries(t *testing.T) {
	ctx := context.Background()
	inner := &countingFixtureRepo{}
	repo := NewFixtureRepository(inner, basecache.NewStore(time.Minute))

	require.NoError(t, repo.Upsert(ctx, fixture.Fixture{FixtureID: 101}))
	_, exists, err := repo.GetByID(ctx, 101)
	require.NoError(t, err)
	require.True(t, exists)

	deleted, err := repo.DeleteByDate(ctx, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, deleted)

	_, exists, err = repo.GetByID(ctx, 101)
	require.NoError(t, err)
	require.False(t, exists, "deleted fixture must not linger in cache")
}

type countingPredictionRepo struct {
	statsCalls int
	stats      map[int64]prediction.Stats
}

func (r *countingPredictionRepo) Upsert(_ context.Context, _ prediction.Prediction) error {
	return nil
}

func (r *countingPredictionRepo) GetByFixtureID(_ context.Context, _ int64) (prediction.Prediction, bool, error) {
	return prediction.Prediction{}, false, nil
}

func (r *countingPredictionRepo) UpsertStats(_ context.Context, item prediction.Stats) error {
	if r.stats == nil {
		r.stats = map[int64]prediction.Stats{}
	}
	r.stats[item.FixtureID] = item
	return nil
}

func (r *countingPredictionRepo) GetStatsByFixtureID(_ context.Context, fixtureID int64) (prediction.Stats, bool, error) {
	r.statsCalls++
	item, ok := r.stats[fixtureID]
	return item, ok, nil
}

func (r *countingPredictionRepo) DeleteByFixtureIDs(_ context.Context, fixtureIDs []int64) (int, error) {
	deleted := 0
	for _, id := range fixtureIDs {
		if _, ok := r.stats[id]; ok {
			delete(r.stats, id)
			deleted++
		}
	}
	return deleted, nil
}

func TestCachedPredictionRepository_StatsInvalidation(t *testing.T) {
	ctx := context.Background()
	inner := &countingPredictionRepo{}
	repo := NewPredictionRepository(inner, basecache.NewStore(time.Minute))

	require.NoError(t, repo.UpsertStats(ctx, prediction.Stats{FixtureID: 101}))

	_, exists, err := repo.GetStatsByFixtureID(ctx, 101)
	require.NoError(t, err)
	require.True(t, exists)
	_, _, err = repo.GetStatsByFixtureID(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, 1, inner.statsCalls)

	_, err = repo.DeleteByFixtureIDs(ctx, []int64{101})
	require.NoError(t, err)

	_, exists, err = repo.GetStatsByFixtureID(ctx, 101)
	require.NoError(t, err)
	require.False(t, exists)
}

type countingAIRepo struct {
	existsCalls int
	items       map[int64][]aiprediction.Prediction
}

func (r *countingAIRepo) Insert(_ context.Context, item aiprediction.Prediction) (int64, error) {
	if r.items == nil {
		r.items = map[int64][]aiprediction.Prediction{}
	}
	r.items[item.FixtureID] = append(r.items[item.FixtureID], item)
	return int64(len(r.items[item.FixtureID])), nil
}

func (r *countingAIRepo) ExistsByFixtureID(_ context.Context, fixtureID int64) (bool, error) {
	r.existsCalls++
	return len(r.items[fixtureID]) > 0, nil
}

func (r *countingAIRepo) ListByFixtureID(_ context.Context, fixtureID int64) ([]aiprediction.Prediction, error) {
	return append([]aiprediction.Prediction(nil), r.items[fixtureID]...), nil
}

func TestCachedAIPredictionRepository_InsertInvalidatesExists(t *testing.T) {
	ctx := context.Background()
	inner := &countingAIRepo{}
	repo := NewAIPredictionRepository(inner, basecache.NewStore(time.Minute))

	exists, err := repo.ExistsByFixtureID(ctx, 101)
	require.NoError(t, err)
	require.False(t, exists)

	_, err = repo.Insert(ctx, aiprediction.Prediction{FixtureID: 101})
	require.NoError(t, err)

	exists, err = repo.ExistsByFixtureID(ctx, 101)
	require.NoError(t, err)
	require.True(t, exists, "insert must drop the cached negative")
	require.Equal(t, 2, inner.existsCalls)
}
