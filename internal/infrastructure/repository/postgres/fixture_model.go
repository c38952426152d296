package postgres

import (
	"database/sql"
	"time"

	"github.com/codrut-p/matchday/internal/domain/fixture"
)

type fixtureTableModel struct {
	FixtureID       int64         `db:"fixture_id"`
	FixtureDate     string        `db:"fixture_date"`
	KickoffAt       time.Time     `db:"kickoff_at"`
	VenueID         sql.NullInt64 `db:"venue_id"`
	VenueName       string        `db:"venue_name"`
	VenueCity       string        `db:"venue_city"`
	LeagueID        int64         `db:"league_id"`
	LeagueName      string        `db:"league_name"`
	LeagueCountry   string        `db:"league_country"`
	LeagueLogoURL   string        `db:"league_logo_url"`
	LeagueFlagURL   string        `db:"league_flag_url"`
	HomeTeamID      int64         `db:"home_team_id"`
	HomeTeamName    string        `db:"home_team_name"`
	HomeTeamLogoURL string        `db:"home_team_logo_url"`
	AwayTeamID      int64         `db:"away_team_id"`
	AwayTeamName    string        `db:"away_team_name"`
	AwayTeamLogoURL string        `db:"away_team_logo_url"`
	HalftimeHome    sql.NullInt64 `db:"halftime_home"`
	HalftimeAway    sql.NullInt64 `db:"halftime_away"`
	FulltimeHome    sql.NullInt64 `db:"fulltime_home"`
	FulltimeAway    sql.NullInt64 `db:"fulltime_away"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// fixtureInsertModel omits the timestamp columns so the database defaults
// and the upsert suffix own them.
type fixtureInsertModel struct {
	FixtureID       int64         `db:"fixture_id"`
	FixtureDate     string        `db:"fixture_date"`
	KickoffAt       time.Time     `db:"kickoff_at"`
	VenueID         sql.NullInt64 `db:"venue_id"`
	VenueName       string        `db:"venue_name"`
	VenueCity       string        `db:"venue_city"`
	LeagueID        int64         `db:"league_id"`
	LeagueName      string        `db:"league_name"`
	LeagueCountry   string        `db:"league_country"`
	LeagueLogoURL   string        `db:"league_logo_url"`
	LeagueFlagURL   string        `db:"league_flag_url"`
	HomeTeamID      int64         `db:"home_team_id"`
	HomeTeamName    string        `db:"home_team_name"`
	HomeTeamLogoURL string        `db:"home_team_logo_url"`
	AwayTeamID      int64         `db:"away_team_id"`
	AwayTeamName    string        `db:"away_team_name"`
	AwayTeamLogoURL string        `db:"away_team_logo_url"`
	HalftimeHome    sql.NullInt64 `db:"halftime_home"`
	HalftimeAway    sql.NullInt64 `db:"halftime_away"`
	FulltimeHome    sql.NullInt64 `db:"fulltime_home"`
	FulltimeAway    sql.NullInt64 `db:"fulltime_away"`
}

func fixtureToInsertModel(item fixture.Fixture) fixtureInsertModel {
	return fixtureInsertModel{
		FixtureID:       item.FixtureID,
		FixtureDate:     fixture.DateKey(item.KickoffAt),
		KickoffAt:       item.KickoffAt.UTC(),
		VenueID:         int64PtrToNull(item.VenueID),
		VenueName:       item.VenueName,
		VenueCity:       item.VenueCity,
		LeagueID:        item.LeagueID,
		LeagueName:      item.LeagueName,
		LeagueCountry:   item.LeagueCountry,
		LeagueLogoURL:   item.LeagueLogoURL,
		LeagueFlagURL:   item.LeagueFlagURL,
		HomeTeamID:      item.HomeTeamID,
		HomeTeamName:    item.HomeTeamName,
		HomeTeamLogoURL: item.HomeTeamLogoURL,
		AwayTeamID:      item.AwayTeamID,
		AwayTeamName:    item.AwayTeamName,
		AwayTeamLogoURL: item.AwayTeamLogoURL,
		HalftimeHome:    intPtrToNull(item.HalftimeHome),
		HalftimeAway:    intPtrToNull(item.HalftimeAway),
		FulltimeHome:    intPtrToNull(item.FulltimeHome),
		FulltimeAway:    intPtrToNull(item.FulltimeAway),
	}
}

func fixtureRowToDomain(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		FixtureID:       row.FixtureID,
		KickoffAt:       row.KickoffAt,
		VenueID:         nullInt64Ptr(row.VenueID),
		VenueName:       row.VenueName,
		VenueCity:       row.VenueCity,
		LeagueID:        row.LeagueID,
		LeagueName:      row.LeagueName,
		LeagueCountry:   row.LeagueCountry,
		LeagueLogoURL:   row.LeagueLogoURL,
		LeagueFlagURL:   row.LeagueFlagURL,
		HomeTeamID:      row.HomeTeamID,
		HomeTeamName:    row.HomeTeamName,
		HomeTeamLogoURL: row.HomeTeamLogoURL,
		AwayTeamID:      row.AwayTeamID,
		AwayTeamName:    row.AwayTeamName,
		AwayTeamLogoURL: row.AwayTeamLogoURL,
		HalftimeHome:    nullIntPtr(row.HalftimeHome),
		HalftimeAway:    nullIntPtr(row.HalftimeAway),
		FulltimeHome:    nullIntPtr(row.FulltimeHome),
		FulltimeAway:    nullIntPtr(row.FulltimeAway),
	}
}
