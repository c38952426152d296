package memory

import (
	"context"
	"sync"

	"github.com/codrut-p/matchday/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[int64]prediction.Prediction
	stats map[int64]prediction.Stats
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{
		items: make(map[int64]prediction.Prediction),
		stats: make(map[int64]prediction.Stats),
	}
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.FixtureID] = item
	return nil
}

func (r *PredictionRepository) GetByFixtureID(_ context.Context, fixtureID int64) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[fixtureID]
	return item, ok, nil
}

func (r *PredictionRepository) UpsertStats(_ context.Context, item prediction.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats[item.FixtureID] = item
	return nil
}

func (r *PredictionRepository) GetStatsByFixtureID(_ context.Context, fixtureID int64) (prediction.Stats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.stats[fixtureID]
	return item, ok, nil
}

func (r *PredictionRepository) DeleteByFixtureIDs(_ context.Context, fixtureIDs []int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for _, id := range fixtureIDs {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			deleted++
		}
		delete(r.stats, id)
	}
	return deleted, nil
}

func (r *PredictionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
