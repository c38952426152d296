package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/codrut-p/matchday/internal/domain/fixture"
)

// FixtureRepository is the in-memory store used by tests and local runs
// without a database.
type FixtureRepository struct {
	mu    sync.RWMutex
	items map[int64]fixture.Fixture
}

func NewFixtureRepository(items []fixture.Fixture) *FixtureRepository {
	byID := make(map[int64]fixture.Fixture, len(items))
	for _, item := range items {
		byID[item.FixtureID] = item
	}
	return &FixtureRepository{items: byID}
}

func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.FixtureID] = item
	return nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) ListByDate(_ context.Context, date time.Time, leagueIDs []int64) ([]fixture.Fixture, error) {
	allowed := make(map[int64]struct{}, len(leagueIDs))
	for _, id := range leagueIDs {
		allowed[id] = struct{}{}
	}
	dateKey := fixture.DateKey(date)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.items {
		if fixture.DateKey(item.KickoffAt) != dateKey {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[item.LeagueID]; !ok {
				continue
			}
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].FixtureID < out[j].FixtureID
	})
	return out, nil
}

func (r *FixtureRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	items, err := r.ListByDate(ctx, date, nil)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *FixtureRepository) DeleteByDate(_ context.Context, date time.Time) (int, error) {
	dateKey := fixture.DateKey(date)

	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, item := range r.items {
		if fixture.DateKey(item.KickoffAt) == dateKey {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

// Len reports the stored row count, for test assertions.
func (r *FixtureRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
