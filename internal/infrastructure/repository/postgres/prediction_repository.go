package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/codrut-p/matchday/internal/domain/prediction"
	qb "github.com/codrut-p/matchday/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	insertModel := predictionToInsertModel(item)
	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (fixture_id)
DO UPDATE SET
    winner_team_id = EXCLUDED.winner_team_id,
    winner_name = EXCLUDED.winner_name,
    winner_comment = EXCLUDED.winner_comment,
    win_or_draw = EXCLUDED.win_or_draw,
    under_over = EXCLUDED.under_over,
    goals_home = EXCLUDED.goals_home,
    goals_away = EXCLUDED.goals_away,
    advice = EXCLUDED.advice,
    percent_home = EXCLUDED.percent_home,
    percent_draw = EXCLUDED.percent_draw,
    percent_away = EXCLUDED.percent_away,
    comp_form_home = EXCLUDED.comp_form_home,
    comp_form_away = EXCLUDED.comp_form_away,
    comp_att_home = EXCLUDED.comp_att_home,
    comp_att_away = EXCLUDED.comp_att_away,
    comp_def_home = EXCLUDED.comp_def_home,
    comp_def_away = EXCLUDED.comp_def_away,
    comp_poisson_home = EXCLUDED.comp_poisson_home,
    comp_poisson_away = EXCLUDED.comp_poisson_away,
    comp_h2h_home = EXCLUDED.comp_h2h_home,
    comp_h2h_away = EXCLUDED.comp_h2h_away,
    comp_goals_home = EXCLUDED.comp_goals_home,
    comp_goals_away = EXCLUDED.comp_goals_away,
    comp_total_home = EXCLUDED.comp_total_home,
    comp_total_away = EXCLUDED.comp_total_away,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) GetByFixtureID(ctx context.Context, fixtureID int64) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}

	return predictionRowToDomain(row), true, nil
}

func (r *PredictionRepository) UpsertStats(ctx context.Context, item prediction.Stats) error {
	insertModel := statsToInsertModel(item)
	query, args, err := qb.InsertModel("prediction_stats", insertModel, `ON CONFLICT (fixture_id)
DO UPDATE SET
    home_yellow_first_half = EXCLUDED.home_yellow_first_half,
    home_yellow_second_half = EXCLUDED.home_yellow_second_half,
    away_yellow_first_half = EXCLUDED.away_yellow_first_half,
    away_yellow_second_half = EXCLUDED.away_yellow_second_half,
    home_scored_home_first_half = EXCLUDED.home_scored_home_first_half,
    home_scored_home_second_half = EXCLUDED.home_scored_home_second_half,
    home_scored_away_first_half = EXCLUDED.home_scored_away_first_half,
    home_scored_away_second_half = EXCLUDED.home_scored_away_second_half,
    home_conceded_home_first_half = EXCLUDED.home_conceded_home_first_half,
    home_conceded_home_second_half = EXCLUDED.home_conceded_home_second_half,
    home_conceded_away_first_half = EXCLUDED.home_conceded_away_first_half,
    home_conceded_away_second_half = EXCLUDED.home_conceded_away_second_half,
    away_scored_home_first_half = EXCLUDED.away_scored_home_first_half,
    away_scored_home_second_half = EXCLUDED.away_scored_home_second_half,
    away_scored_away_first_half = EXCLUDED.away_scored_away_first_half,
    away_scored_away_second_half = EXCLUDED.away_scored_away_second_half,
    away_conceded_home_first_half = EXCLUDED.away_conceded_home_first_half,
    away_conceded_home_second_half = EXCLUDED.away_conceded_home_second_half,
    away_conceded_away_first_half = EXCLUDED.away_conceded_away_first_half,
    away_conceded_away_second_half = EXCLUDED.away_conceded_away_second_half,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert prediction stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction stats: %w", err)
	}
	return nil
}

func (r *PredictionRepository) GetStatsByFixtureID(ctx context.Context, fixtureID int64) (prediction.Stats, bool, error) {
	query, args, err := qb.Select("*").From("prediction_stats").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return prediction.Stats{}, false, fmt.Errorf("build get prediction stats query: %w", err)
	}

	var row predictionStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Stats{}, false, nil
		}
		return prediction.Stats{}, false, fmt.Errorf("get prediction stats: %w", err)
	}

	return statsRowToDomain(row), true, nil
}

// DeleteByFixtureIDs clears both the predictions and their derived stats so
// a date wipe leaves no orphaned rows behind.
func (r *PredictionRepository) DeleteByFixtureIDs(ctx context.Context, fixtureIDs []int64) (int, error) {
	if len(fixtureIDs) == 0 {
		return 0, nil
	}

	values := make([]any, 0, len(fixtureIDs))
	for _, id := range fixtureIDs {
		values = append(values, id)
	}

	statsQuery, statsArgs, err := qb.DeleteFrom("prediction_stats").
		Where(qb.In("fixture_id", values)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete prediction stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, statsQuery, statsArgs...); err != nil {
		return 0, fmt.Errorf("delete prediction stats: %w", err)
	}

	query, args, err := qb.DeleteFrom("predictions").
		Where(qb.In("fixture_id", values)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete predictions query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete predictions: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted predictions: %w", err)
	}
	return int(deleted), nil
}
