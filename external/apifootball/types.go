package apifootball

import (
	"strings"
	"time"

	"github.com/codrut-p/matchday/internal/usecase"
)

type fixturesEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture struct {
		ID    int64  `json:"id"`
		Date  string `json:"date"`
		Venue struct {
			ID   *int64 `json:"id"`
			Name string `json:"name"`
			City string `json:"city"`
		} `json:"venue"`
	} `json:"fixture"`
	League struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Logo    string `json:"logo"`
		Flag    string `json:"flag"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Score struct {
		Halftime scorePair `json:"halftime"`
		Fulltime scorePair `json:"fulltime"`
	} `json:"score"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type predictionsEnvelope struct {
	Response []predictionItem `json:"response"`
}

type predictionItem struct {
	Predictions struct {
		Winner *struct {
			ID      *int64 `json:"id"`
			Name    string `json:"name"`
			Comment string `json:"comment"`
		} `json:"winner"`
		WinOrDraw bool    `json:"win_or_draw"`
		UnderOver *string `json:"under_over"`
		Goals     struct {
			Home *string `json:"home"`
			Away *string `json:"away"`
		} `json:"goals"`
		Advice  string `json:"advice"`
		Percent struct {
			Home string `json:"home"`
			Draw string `json:"draw"`
			Away string `json:"away"`
		} `json:"percent"`
	} `json:"predictions"`
	Comparison struct {
		Form                homeAwayPair `json:"form"`
		Att                 homeAwayPair `json:"att"`
		Def                 homeAwayPair `json:"def"`
		PoissonDistribution homeAwayPair `json:"poisson_distribution"`
		H2H                 homeAwayPair `json:"h2h"`
		Goals               homeAwayPair `json:"goals"`
		Total               homeAwayPair `json:"total"`
	} `json:"comparison"`
	Teams struct {
		Home teamSeason `json:"home"`
		Away teamSeason `json:"away"`
	} `json:"teams"`
}

type homeAwayPair struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

type teamSeason struct {
	League struct {
		Fixtures struct {
			Played struct {
				Home  int `json:"home"`
				Away  int `json:"away"`
				Total int `json:"total"`
			} `json:"played"`
		} `json:"fixtures"`
		Goals struct {
			For struct {
				Minute map[string]minuteBucket `json:"minute"`
			} `json:"for"`
			Against struct {
				Minute map[string]minuteBucket `json:"minute"`
			} `json:"against"`
		} `json:"goals"`
		Cards struct {
			Yellow map[string]minuteBucket `json:"yellow"`
		} `json:"cards"`
	} `json:"league"`
}

// minuteBucket totals are null when the provider has no observation for
// the range, which is different from a counted zero.
type minuteBucket struct {
	Total      *int    `json:"total"`
	Percentage *string `json:"percentage"`
}

func mapFixtureItem(item fixtureItem) usecase.ExternalFixture {
	kickoff, _ := time.Parse(time.RFC3339, item.Fixture.Date)

	return usecase.ExternalFixture{
		FixtureID:       item.Fixture.ID,
		KickoffAt:       kickoff,
		VenueID:         item.Fixture.Venue.ID,
		VenueName:       strings.TrimSpace(item.Fixture.Venue.Name),
		VenueCity:       strings.TrimSpace(item.Fixture.Venue.City),
		LeagueID:        item.League.ID,
		LeagueName:      strings.TrimSpace(item.League.Name),
		LeagueCountry:   strings.TrimSpace(item.League.Country),
		LeagueLogoURL:   strings.TrimSpace(item.League.Logo),
		LeagueFlagURL:   strings.TrimSpace(item.League.Flag),
		HomeTeamID:      item.Teams.Home.ID,
		HomeTeamName:    strings.TrimSpace(item.Teams.Home.Name),
		HomeTeamLogoURL: strings.TrimSpace(item.Teams.Home.Logo),
		AwayTeamID:      item.Teams.Away.ID,
		AwayTeamName:    strings.TrimSpace(item.Teams.Away.Name),
		AwayTeamLogoURL: strings.TrimSpace(item.Teams.Away.Logo),
		HalftimeHome:    item.Score.Halftime.Home,
		HalftimeAway:    item.Score.Halftime.Away,
		FulltimeHome:    item.Score.Fulltime.Home,
		FulltimeAway:    item.Score.Fulltime.Away,
	}
}

func mapPredictionItem(item predictionItem) usecase.ExternalPredictionBundle {
	bundle := usecase.ExternalPredictionBundle{
		WinOrDraw:   item.Predictions.WinOrDraw,
		UnderOver:   item.Predictions.UnderOver,
		GoalsHome:   item.Predictions.Goals.Home,
		GoalsAway:   item.Predictions.Goals.Away,
		Advice:      strings.TrimSpace(item.Predictions.Advice),
		PercentHome: item.Predictions.Percent.Home,
		PercentDraw: item.Predictions.Percent.Draw,
		PercentAway: item.Predictions.Percent.Away,
		Comparison: usecase.ExternalComparison{
			FormHome:      item.Comparison.Form.Home,
			FormAway:      item.Comparison.Form.Away,
			AttackHome:    item.Comparison.Att.Home,
			AttackAway:    item.Comparison.Att.Away,
			DefenseHome:   item.Comparison.Def.Home,
			DefenseAway:   item.Comparison.Def.Away,
			PoissonHome:   item.Comparison.PoissonDistribution.Home,
			PoissonAway:   item.Comparison.PoissonDistribution.Away,
			H2HHome:       item.Comparison.H2H.Home,
			H2HAway:       item.Comparison.H2H.Away,
			GoalsCompHome: item.Comparison.Goals.Home,
			GoalsCompAway: item.Comparison.Goals.Away,
			TotalHome:     item.Comparison.Total.Home,
			TotalAway:     item.Comparison.Total.Away,
		},
		HomeForm: mapTeamSeason(item.Teams.Home),
		AwayForm: mapTeamSeason(item.Teams.Away),
	}

	if winner := item.Predictions.Winner; winner != nil {
		bundle.WinnerTeamID = winner.ID
		if name := strings.TrimSpace(winner.Name); name != "" {
			bundle.WinnerName = &name
		}
		if comment := strings.TrimSpace(winner.Comment); comment != "" {
			bundle.WinnerComment = &comment
		}
	}

	return bundle
}

// mapTeamSeason keeps one scoring bucket map per direction; the venue
// split happens downstream by dividing the same totals by home or away
// games played.
func mapTeamSeason(item teamSeason) usecase.ExternalTeamForm {
	goalsFor := bucketTotals(item.League.Goals.For.Minute)
	goalsAgainst := bucketTotals(item.League.Goals.Against.Minute)

	total := item.League.Fixtures.Played.Total
	if total == 0 {
		total = item.League.Fixtures.Played.Home + item.League.Fixtures.Played.Away
	}

	return usecase.ExternalTeamForm{
		GamesTotal:   total,
		GamesHome:    item.League.Fixtures.Played.Home,
		GamesAway:    item.League.Fixtures.Played.Away,
		Yellow:       bucketTotals(item.League.Cards.Yellow),
		ScoredHome:   goalsFor,
		ScoredAway:   goalsFor,
		ConcededHome: goalsAgainst,
		ConcededAway: goalsAgainst,
	}
}

func bucketTotals(minute map[string]minuteBucket) map[string]*int {
	if len(minute) == 0 {
		return nil
	}
	out := make(map[string]*int, len(minute))
	for label, bucket := range minute {
		out[label] = bucket.Total
	}
	return out
}
