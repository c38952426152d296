package aiprediction

import (
	"context"
	"time"
)

// RankedItem is one prediction line with the model's own confidence,
// expressed as a whole percentage.
type RankedItem struct {
	Text       string
	Confidence int
}

// ScoreLine is a predicted scoreline such as "2-1" with its confidence.
type ScoreLine struct {
	Score      string
	Confidence int
}

// Prediction is one generation run for a fixture. Rows are append-only;
// repeated runs for the same fixture coexist and are ordered by CreatedAt.
type Prediction struct {
	ID        int64
	FixtureID int64
	CreatedAt time.Time

	HalfTime ScoreLine
	FullTime ScoreLine

	// Exactly five of each, ranked most to least likely.
	MatchPredictions []RankedItem
	ComboPredictions []RankedItem

	OffensiveAnalysis string
	DefensiveAnalysis string
	FormAnalysis      string
	KeyInsights       string
}

// Repository stores generation runs. Insert never overwrites; existence
// checks drive whether a fixture has been enriched at least once.
type Repository interface {
	Insert(ctx context.Context, item Prediction) (int64, error)
	ExistsByFixtureID(ctx context.Context, fixtureID int64) (bool, error)
	ListByFixtureID(ctx context.Context, fixtureID int64) ([]Prediction, error)
}
