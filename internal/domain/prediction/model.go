package prediction

import "context"

// Prediction is the provider's own pre-match forecast for one fixture.
// One row per fixture; re-ingesting overwrites.
type Prediction struct {
	FixtureID     int64
	WinnerTeamID  *int64
	WinnerName    *string
	WinnerComment *string
	WinOrDraw     bool
	UnderOver     *string
	GoalsHome     *string
	GoalsAway     *string
	Advice        string
	PercentHome   string
	PercentDraw   string
	PercentAway   string

	// Home/away comparison metrics, percent strings as the provider
	// reports them ("45%").
	FormHome      string
	FormAway      string
	AttackHome    string
	AttackAway    string
	DefenseHome   string
	DefenseAway   string
	PoissonHome   string
	PoissonAway   string
	H2HHome       string
	H2HAway       string
	GoalsCompHome string
	GoalsCompAway string
	TotalHome     string
	TotalAway     string
}

// Stats holds the per-game interval averages derived from the provider's
// minute-bucket counters. A nil field means the provider reported no data
// for that half, which is distinct from an observed average of zero.
type Stats struct {
	FixtureID int64

	HomeYellowFirstHalf  *float64
	HomeYellowSecondHalf *float64
	AwayYellowFirstHalf  *float64
	AwayYellowSecondHalf *float64

	HomeScoredHomeFirstHalf    *float64
	HomeScoredHomeSecondHalf   *float64
	HomeScoredAwayFirstHalf    *float64
	HomeScoredAwaySecondHalf   *float64
	HomeConcededHomeFirstHalf  *float64
	HomeConcededHomeSecondHalf *float64
	HomeConcededAwayFirstHalf  *float64
	HomeConcededAwaySecondHalf *float64

	AwayScoredHomeFirstHalf    *float64
	AwayScoredHomeSecondHalf   *float64
	AwayScoredAwayFirstHalf    *float64
	AwayScoredAwaySecondHalf   *float64
	AwayConcededHomeFirstHalf  *float64
	AwayConcededHomeSecondHalf *float64
	AwayConcededAwayFirstHalf  *float64
	AwayConcededAwaySecondHalf *float64
}

// Repository persists predictions and their derived stats, both keyed by
// fixture id with overwrite-on-conflict semantics.
type Repository interface {
	Upsert(ctx context.Context, item Prediction) error
	GetByFixtureID(ctx context.Context, fixtureID int64) (Prediction, bool, error)
	UpsertStats(ctx context.Context, item Stats) error
	GetStatsByFixtureID(ctx context.Context, fixtureID int64) (Stats, bool, error)
	DeleteByFixtureIDs(ctx context.Context, fixtureIDs []int64) (int, error)
}
