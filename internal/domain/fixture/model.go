package fixture

import "time"

// Fixture is one scheduled or completed match as reported by the stats
// provider. FixtureID is the provider-assigned natural key; re-ingesting a
// date replaces the row wholesale.
type Fixture struct {
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

// DateKey formats a wall-clock day the way the provider's date filter and
// the fixtures table expect it.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
