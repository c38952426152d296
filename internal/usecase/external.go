package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/prediction"
)

// StatsProvider is the football data API the pipeline ingests from.
// Implementations map the provider's wire format into the External types;
// field-level validation happens here, at the usecase boundary.
type StatsProvider interface {
	FetchFixturesByDate(ctx context.Context, date time.Time) ([]ExternalFixture, error)
	FetchPredictionByFixture(ctx context.Context, fixtureID int64) (*ExternalPredictionBundle, error)
}

type ExternalFixture struct {
	FixtureID       int64
	KickoffAt       time.Time
	VenueID         *int64
	VenueName       string
	VenueCity       string
	LeagueID        int64
	LeagueName      string
	LeagueCountry   string
	LeagueLogoURL   string
	LeagueFlagURL   string
	HomeTeamID      int64
	HomeTeamName    string
	HomeTeamLogoURL string
	AwayTeamID      int64
	AwayTeamName    string
	AwayTeamLogoURL string
	HalftimeHome    *int
	HalftimeAway    *int
	FulltimeHome    *int
	FulltimeAway    *int
}

// ExternalTeamForm is one team's season counters from the prediction
// payload. Bucket maps key minute-range labels to event totals; nil values
// mean the provider had no data for that bucket.
type ExternalTeamForm struct {
	GamesTotal int
	GamesHome  int
	GamesAway  int

	Yellow       map[string]*int
	ScoredHome   map[string]*int
	ScoredAway   map[string]*int
	ConcededHome map[string]*int
	ConcededAway map[string]*int
}

type ExternalComparison struct {
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

// ExternalPredictionBundle is everything the provider returns for one
// fixture's prediction endpoint: the forecast itself plus both teams'
// raw counters, which the aggregator condenses into averages.
type ExternalPredictionBundle struct {
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
	Comparison    ExternalComparison
	HomeForm      ExternalTeamForm
	AwayForm      ExternalTeamForm
}

// mapExternalFixtureToDomain validates provider-required fields and
// converts. A missing id is a record-level mapping failure; the caller
// logs it and continues with the rest of the batch.
func mapExternalFixtureToDomain(item ExternalFixture) (fixture.Fixture, error) {
	if item.FixtureID <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id", ErrMapping)
	}
	if item.LeagueID <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: league id for fixture=%d", ErrMapping, item.FixtureID)
	}
	if item.HomeTeamID <= 0 || item.AwayTeamID <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: team ids for fixture=%d", ErrMapping, item.FixtureID)
	}
	if item.KickoffAt.IsZero() {
		return fixture.Fixture{}, fmt.Errorf("%w: kickoff time for fixture=%d", ErrMapping, item.FixtureID)
	}

	return fixture.Fixture{
		FixtureID:       item.FixtureID,
		KickoffAt:       item.KickoffAt.UTC(),
		VenueID:         item.VenueID,
		VenueName:       strings.TrimSpace(item.VenueName),
		VenueCity:       strings.TrimSpace(item.VenueCity),
		LeagueID:        item.LeagueID,
		LeagueName:      strings.TrimSpace(item.LeagueName),
		LeagueCountry:   strings.TrimSpace(item.LeagueCountry),
		LeagueLogoURL:   strings.TrimSpace(item.LeagueLogoURL),
		LeagueFlagURL:   strings.TrimSpace(item.LeagueFlagURL),
		HomeTeamID:      item.HomeTeamID,
		HomeTeamName:    strings.TrimSpace(item.HomeTeamName),
		HomeTeamLogoURL: strings.TrimSpace(item.HomeTeamLogoURL),
		AwayTeamID:      item.AwayTeamID,
		AwayTeamName:    strings.TrimSpace(item.AwayTeamName),
		AwayTeamLogoURL: strings.TrimSpace(item.AwayTeamLogoURL),
		HalftimeHome:    item.HalftimeHome,
		HalftimeAway:    item.HalftimeAway,
		FulltimeHome:    item.FulltimeHome,
		FulltimeAway:    item.FulltimeAway,
	}, nil
}

func mapExternalPredictionToDomain(item ExternalPredictionBundle) (prediction.Prediction, error) {
	if item.FixtureID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture id on prediction payload", ErrMapping)
	}

	c := item.Comparison
	return prediction.Prediction{
		FixtureID:     item.FixtureID,
		WinnerTeamID:  item.WinnerTeamID,
		WinnerName:    item.WinnerName,
		WinnerComment: item.WinnerComment,
		WinOrDraw:     item.WinOrDraw,
		UnderOver:     item.UnderOver,
		GoalsHome:     item.GoalsHome,
		GoalsAway:     item.GoalsAway,
		Advice:        strings.TrimSpace(item.Advice),
		PercentHome:   strings.TrimSpace(item.PercentHome),
		PercentDraw:   strings.TrimSpace(item.PercentDraw),
		PercentAway:   strings.TrimSpace(item.PercentAway),
		FormHome:      c.FormHome,
		FormAway:      c.FormAway,
		AttackHome:    c.AttackHome,
		AttackAway:    c.AttackAway,
		DefenseHome:   c.DefenseHome,
		DefenseAway:   c.DefenseAway,
		PoissonHome:   c.PoissonHome,
		PoissonAway:   c.PoissonAway,
		H2HHome:       c.H2HHome,
		H2HAway:       c.H2HAway,
		GoalsCompHome: c.GoalsCompHome,
		GoalsCompAway: c.GoalsCompAway,
		TotalHome:     c.TotalHome,
		TotalAway:     c.TotalAway,
	}, nil
}

func externalFormToCounters(form ExternalTeamForm) prediction.TeamCounters {
	return prediction.TeamCounters{
		GamesTotal:   form.GamesTotal,
		GamesHome:    form.GamesHome,
		GamesAway:    form.GamesAway,
		Yellow:       form.Yellow,
		ScoredHome:   form.ScoredHome,
		ScoredAway:   form.ScoredAway,
		ConcededHome: form.ConcededHome,
		ConcededAway: form.ConcededAway,
	}
}
