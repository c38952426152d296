package postgres

import (
	"database/sql"
	"time"

	"github.com/codrut-p/matchday/internal/domain/prediction"
)

type predictionTableModel struct {
	FixtureID     int64          `db:"fixture_id"`
	WinnerTeamID  sql.NullInt64  `db:"winner_team_id"`
	WinnerName    sql.NullString `db:"winner_name"`
	WinnerComment sql.NullString `db:"winner_comment"`
	WinOrDraw     bool           `db:"win_or_draw"`
	UnderOver     sql.NullString `db:"under_over"`
	GoalsHome     sql.NullString `db:"goals_home"`
	GoalsAway     sql.NullString `db:"goals_away"`
	Advice        string         `db:"advice"`
	PercentHome   string         `db:"percent_home"`
	PercentDraw   string         `db:"percent_draw"`
	PercentAway   string         `db:"percent_away"`
	FormHome      string         `db:"comp_form_home"`
	FormAway      string         `db:"comp_form_away"`
	AttackHome    string         `db:"comp_att_home"`
	AttackAway    string         `db:"comp_att_away"`
	DefenseHome   string         `db:"comp_def_home"`
	DefenseAway   string         `db:"comp_def_away"`
	PoissonHome   string         `db:"comp_poisson_home"`
	PoissonAway   string         `db:"comp_poisson_away"`
	H2HHome       string         `db:"comp_h2h_home"`
	H2HAway       string         `db:"comp_h2h_away"`
	GoalsCompHome string         `db:"comp_goals_home"`
	GoalsCompAway string         `db:"comp_goals_away"`
	TotalHome     string         `db:"comp_total_home"`
	TotalAway     string         `db:"comp_total_away"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type predictionInsertModel struct {
	FixtureID     int64          `db:"fixture_id"`
	WinnerTeamID  sql.NullInt64  `db:"winner_team_id"`
	WinnerName    sql.NullString `db:"winner_name"`
	WinnerComment sql.NullString `db:"winner_comment"`
	WinOrDraw     bool           `db:"win_or_draw"`
	UnderOver     sql.NullString `db:"under_over"`
	GoalsHome     sql.NullString `db:"goals_home"`
	GoalsAway     sql.NullString `db:"goals_away"`
	Advice        string         `db:"advice"`
	PercentHome   string         `db:"percent_home"`
	PercentDraw   string         `db:"percent_draw"`
	PercentAway   string         `db:"percent_away"`
	FormHome      string         `db:"comp_form_home"`
	FormAway      string         `db:"comp_form_away"`
	AttackHome    string         `db:"comp_att_home"`
	AttackAway    string         `db:"comp_att_away"`
	DefenseHome   string         `db:"comp_def_home"`
	DefenseAway   string         `db:"comp_def_away"`
	PoissonHome   string         `db:"comp_poisson_home"`
	PoissonAway   string         `db:"comp_poisson_away"`
	H2HHome       string         `db:"comp_h2h_home"`
	H2HAway       string         `db:"comp_h2h_away"`
	GoalsCompHome string         `db:"comp_goals_home"`
	GoalsCompAway string         `db:"comp_goals_away"`
	TotalHome     string         `db:"comp_total_home"`
	TotalAway     string         `db:"comp_total_away"`
}

func predictionToInsertModel(item prediction.Prediction) predictionInsertModel {
	return predictionInsertModel{
		FixtureID:     item.FixtureID,
		WinnerTeamID:  int64PtrToNull(item.WinnerTeamID),
		WinnerName:    stringPtrToNull(item.WinnerName),
		WinnerComment: stringPtrToNull(item.WinnerComment),
		WinOrDraw:     item.WinOrDraw,
		UnderOver:     stringPtrToNull(item.UnderOver),
		GoalsHome:     stringPtrToNull(item.GoalsHome),
		GoalsAway:     stringPtrToNull(item.GoalsAway),
		Advice:        item.Advice,
		PercentHome:   item.PercentHome,
		PercentDraw:   item.PercentDraw,
		PercentAway:   item.PercentAway,
		FormHome:      item.FormHome,
		FormAway:      item.FormAway,
		AttackHome:    item.AttackHome,
		AttackAway:    item.AttackAway,
		DefenseHome:   item.DefenseHome,
		DefenseAway:   item.DefenseAway,
		PoissonHome:   item.PoissonHome,
		PoissonAway:   item.PoissonAway,
		H2HHome:       item.H2HHome,
		H2HAway:       item.H2HAway,
		GoalsCompHome: item.GoalsCompHome,
		GoalsCompAway: item.GoalsCompAway,
		TotalHome:     item.TotalHome,
		TotalAway:     item.TotalAway,
	}
}

func predictionRowToDomain(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		FixtureID:     row.FixtureID,
		WinnerTeamID:  nullInt64Ptr(row.WinnerTeamID),
		WinnerName:    nullStringPtr(row.WinnerName),
		WinnerComment: nullStringPtr(row.WinnerComment),
		WinOrDraw:     row.WinOrDraw,
		UnderOver:     nullStringPtr(row.UnderOver),
		GoalsHome:     nullStringPtr(row.GoalsHome),
		GoalsAway:     nullStringPtr(row.GoalsAway),
		Advice:        row.Advice,
		PercentHome:   row.PercentHome,
		PercentDraw:   row.PercentDraw,
		PercentAway:   row.PercentAway,
		FormHome:      row.FormHome,
		FormAway:      row.FormAway,
		AttackHome:    row.AttackHome,
		AttackAway:    row.AttackAway,
		DefenseHome:   row.DefenseHome,
		DefenseAway:   row.DefenseAway,
		PoissonHome:   row.PoissonHome,
		PoissonAway:   row.PoissonAway,
		H2HHome:       row.H2HHome,
		H2HAway:       row.H2HAway,
		GoalsCompHome: row.GoalsCompHome,
		GoalsCompAway: row.GoalsCompAway,
		TotalHome:     row.TotalHome,
		TotalAway:     row.TotalAway,
	}
}

type predictionStatsTableModel struct {
	FixtureID int64 `db:"fixture_id"`

	HomeYellowFirstHalf  sql.NullFloat64 `db:"home_yellow_first_half"`
	HomeYellowSecondHalf sql.NullFloat64 `db:"home_yellow_second_half"`
	AwayYellowFirstHalf  sql.NullFloat64 `db:"away_yellow_first_half"`
	AwayYellowSecondHalf sql.NullFloat64 `db:"away_yellow_second_half"`

	HomeScoredHomeFirstHalf    sql.NullFloat64 `db:"home_scored_home_first_half"`
	HomeScoredHomeSecondHalf   sql.NullFloat64 `db:"home_scored_home_second_half"`
	HomeScoredAwayFirstHalf    sql.NullFloat64 `db:"home_scored_away_first_half"`
	HomeScoredAwaySecondHalf   sql.NullFloat64 `db:"home_scored_away_second_half"`
	HomeConcededHomeFirstHalf  sql.NullFloat64 `db:"home_conceded_home_first_half"`
	HomeConcededHomeSecondHalf sql.NullFloat64 `db:"home_conceded_home_second_half"`
	HomeConcededAwayFirstHalf  sql.NullFloat64 `db:"home_conceded_away_first_half"`
	HomeConcededAwaySecondHalf sql.NullFloat64 `db:"home_conceded_away_second_half"`

	AwayScoredHomeFirstHalf    sql.NullFloat64 `db:"away_scored_home_first_half"`
	AwayScoredHomeSecondHalf   sql.NullFloat64 `db:"away_scored_home_second_half"`
	AwayScoredAwayFirstHalf    sql.NullFloat64 `db:"away_scored_away_first_half"`
	AwayScoredAwaySecondHalf   sql.NullFloat64 `db:"away_scored_away_second_half"`
	AwayConcededHomeFirstHalf  sql.NullFloat64 `db:"away_conceded_home_first_half"`
	AwayConcededHomeSecondHalf sql.NullFloat64 `db:"away_conceded_home_second_half"`
	AwayConcededAwayFirstHalf  sql.NullFloat64 `db:"away_conceded_away_first_half"`
	AwayConcededAwaySecondHalf sql.NullFloat64 `db:"away_conceded_away_second_half"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type predictionStatsInsertModel struct {
	FixtureID int64 `db:"fixture_id"`

	HomeYellowFirstHalf  sql.NullFloat64 `db:"home_yellow_first_half"`
	HomeYellowSecondHalf sql.NullFloat64 `db:"home_yellow_second_half"`
	AwayYellowFirstHalf  sql.NullFloat64 `db:"away_yellow_first_half"`
	AwayYellowSecondHalf sql.NullFloat64 `db:"away_yellow_second_half"`

	HomeScoredHomeFirstHalf    sql.NullFloat64 `db:"home_scored_home_first_half"`
	HomeScoredHomeSecondHalf   sql.NullFloat64 `db:"home_scored_home_second_half"`
	HomeScoredAwayFirstHalf    sql.NullFloat64 `db:"home_scored_away_first_half"`
	HomeScoredAwaySecondHalf   sql.NullFloat64 `db:"home_scored_away_second_half"`
	HomeConcededHomeFirstHalf  sql.NullFloat64 `db:"home_conceded_home_first_half"`
	HomeConcededHomeSecondHalf sql.NullFloat64 `db:"home_conceded_home_second_half"`
	HomeConcededAwayFirstHalf  sql.NullFloat64 `db:"home_conceded_away_first_half"`
	HomeConcededAwaySecondHalf sql.NullFloat64 `db:"home_conceded_away_second_half"`

	AwayScoredHomeFirstHalf    sql.NullFloat64 `db:"away_scored_home_first_half"`
	AwayScoredHomeSecondHalf   sql.NullFloat64 `db:"away_scored_home_second_half"`
	AwayScoredAwayFirstHalf    sql.NullFloat64 `db:"away_scored_away_first_half"`
	AwayScoredAwaySecondHalf   sql.NullFloat64 `db:"away_scored_away_second_half"`
	AwayConcededHomeFirstHalf  sql.NullFloat64 `db:"away_conceded_home_first_half"`
	AwayConcededHomeSecondHalf sql.NullFloat64 `db:"away_conceded_home_second_half"`
	AwayConcededAwayFirstHalf  sql.NullFloat64 `db:"away_conceded_away_first_half"`
	AwayConcededAwaySecondHalf sql.NullFloat64 `db:"away_conceded_away_second_half"`
}

func statsToInsertModel(item prediction.Stats) predictionStatsInsertModel {
	return predictionStatsInsertModel{
		FixtureID:                  item.FixtureID,
		HomeYellowFirstHalf:        float64PtrToNull(item.HomeYellowFirstHalf),
		HomeYellowSecondHalf:       float64PtrToNull(item.HomeYellowSecondHalf),
		AwayYellowFirstHalf:        float64PtrToNull(item.AwayYellowFirstHalf),
		AwayYellowSecondHalf:       float64PtrToNull(item.AwayYellowSecondHalf),
		HomeScoredHomeFirstHalf:    float64PtrToNull(item.HomeScoredHomeFirstHalf),
		HomeScoredHomeSecondHalf:   float64PtrToNull(item.HomeScoredHomeSecondHalf),
		HomeScoredAwayFirstHalf:    float64PtrToNull(item.HomeScoredAwayFirstHalf),
		HomeScoredAwaySecondHalf:   float64PtrToNull(item.HomeScoredAwaySecondHalf),
		HomeConcededHomeFirstHalf:  float64PtrToNull(item.HomeConcededHomeFirstHalf),
		HomeConcededHomeSecondHalf: float64PtrToNull(item.HomeConcededHomeSecondHalf),
		HomeConcededAwayFirstHalf:  float64PtrToNull(item.HomeConcededAwayFirstHalf),
		HomeConcededAwaySecondHalf: float64PtrToNull(item.HomeConcededAwaySecondHalf),
		AwayScoredHomeFirstHalf:    float64PtrToNull(item.AwayScoredHomeFirstHalf),
		AwayScoredHomeSecondHalf:   float64PtrToNull(item.AwayScoredHomeSecondHalf),
		AwayScoredAwayFirstHalf:    float64PtrToNull(item.AwayScoredAwayFirstHalf),
		AwayScoredAwaySecondHalf:   float64PtrToNull(item.AwayScoredAwaySecondHalf),
		AwayConcededHomeFirstHalf:  float64PtrToNull(item.AwayConcededHomeFirstHalf),
		AwayConcededHomeSecondHalf: float64PtrToNull(item.AwayConcededHomeSecondHalf),
		AwayConcededAwayFirstHalf:  float64PtrToNull(item.AwayConcededAwayFirstHalf),
		AwayConcededAwaySecondHalf: float64PtrToNull(item.AwayConcededAwaySecondHalf),
	}
}

func statsRowToDomain(row predictionStatsTableModel) prediction.Stats {
	return prediction.Stats{
		FixtureID:                  row.FixtureID,
		HomeYellowFirstHalf:        nullFloat64Ptr(row.HomeYellowFirstHalf),
		HomeYellowSecondHalf:       nullFloat64Ptr(row.HomeYellowSecondHalf),
		AwayYellowFirstHalf:        nullFloat64Ptr(row.AwayYellowFirstHalf),
		AwayYellowSecondHalf:       nullFloat64Ptr(row.AwayYellowSecondHalf),
		HomeScoredHomeFirstHalf:    nullFloat64Ptr(row.HomeScoredHomeFirstHalf),
		HomeScoredHomeSecondHalf:   nullFloat64Ptr(row.HomeScoredHomeSecondHalf),
		HomeScoredAwayFirstHalf:    nullFloat64Ptr(row.HomeScoredAwayFirstHalf),
		HomeScoredAwaySecondHalf:   nullFloat64Ptr(row.HomeScoredAwaySecondHalf),
		HomeConcededHomeFirstHalf:  nullFloat64Ptr(row.HomeConcededHomeFirstHalf),
		HomeConcededHomeSecondHalf: nullFloat64Ptr(row.HomeConcededHomeSecondHalf),
		HomeConcededAwayFirstHalf:  nullFloat64Ptr(row.HomeConcededAwayFirstHalf),
		HomeConcededAwaySecondHalf: nullFloat64Ptr(row.HomeConcededAwaySecondHalf),
		AwayScoredHomeFirstHalf:    nullFloat64Ptr(row.AwayScoredHomeFirstHalf),
		AwayScoredHomeSecondHalf:   nullFloat64Ptr(row.AwayScoredHomeSecondHalf),
		AwayScoredAwayFirstHalf:    nullFloat64Ptr(row.AwayScoredAwayFirstHalf),
		AwayScoredAwaySecondHalf:   nullFloat64Ptr(row.AwayScoredAwaySecondHalf),
		AwayConcededHomeFirstHalf:  nullFloat64Ptr(row.AwayConcededHomeFirstHalf),
		AwayConcededHomeSecondHalf: nullFloat64Ptr(row.AwayConcededHomeSecondHalf),
		AwayConcededAwayFirstHalf:  nullFloat64Ptr(row.AwayConcededAwayFirstHalf),
		AwayConcededAwaySecondHalf: nullFloat64Ptr(row.AwayConcededAwaySecondHalf),
	}
}
