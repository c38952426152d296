package memory

import (
	"context"
	"sync"

	"github.com/codrut-p/matchday/internal/domain/aiprediction"
)

type AIPredictionRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []aiprediction.Prediction
}

func NewAIPredictionRepository() *AIPredictionRepository {
	return &AIPredictionRepository{nextID: 1}
}

func (r *AIPredictionRepository) Insert(_ context.Context, item aiprediction.Prediction) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item.ID, nil
}

func (r *AIPredictionRepository) ExistsByFixtureID(_ context.Context, fixtureID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.FixtureID == fixtureID {
			return true, nil
		}
	}
	return false, nil
}

func (r *AIPredictionRepository) ListByFixtureID(_ context.Context, fixtureID int64) ([]aiprediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]aiprediction.Prediction, 0)
	for _, item := range r.items {
		if item.FixtureID == fixtureID {
			out = append(out, item)
		}
	}
	return out, nil
}
