package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/codrut-p/matchday/internal/domain/fixture"
	qb "github.com/codrut-p/matchday/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) error {
	insertModel := fixtureToInsertModel(item)
	query, args, err := qb.InsertModel("fixtures", insertModel, `ON CONFLICT (fixture_id)
DO UPDATE SET
    fixture_date = EXCLUDED.fixture_date,
    kickoff_at = EXCLUDED.kickoff_at,
    venue_id = EXCLUDED.venue_id,
    venue_name = EXCLUDED.venue_name,
    venue_city = EXCLUDED.venue_city,
    league_id = EXCLUDED.league_id,
    league_name = EXCLUDED.league_name,
    league_country = EXCLUDED.league_country,
    league_logo_url = EXCLUDED.league_logo_url,
    league_flag_url = EXCLUDED.league_flag_url,
    home_team_id = EXCLUDED.home_team_id,
    home_team_name = EXCLUDED.home_team_name,
    home_team_logo_url = EXCLUDED.home_team_logo_url,
    away_team_id = EXCLUDED.away_team_id,
    away_team_name = EXCLUDED.away_team_name,
    away_team_logo_url = EXCLUDED.away_team_logo_url,
    halftime_home = EXCLUDED.halftime_home,
    halftime_away = EXCLUDED.halftime_away,
    fulltime_home = EXCLUDED.fulltime_home,
    fulltime_away = EXCLUDED.fulltime_away,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture by id: %w", err)
	}

	return fixtureRowToDomain(row), true, nil
}

func (r *FixtureRepository) ListByDate(ctx context.Context, date time.Time, leagueIDs []int64) ([]fixture.Fixture, error) {
	conditions := []qb.Condition{qb.Eq("fixture_date", fixture.DateKey(date))}
	if len(leagueIDs) > 0 {
		values := make([]any, 0, len(leagueIDs))
		for _, id := range leagueIDs {
			values = append(values, id)
		}
		conditions = append(conditions, qb.In("league_id", values))
	}

	query, args, err := qb.Select("*").From("fixtures").
		Where(conditions...).
		OrderBy("kickoff_at", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by date query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by date: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureRowToDomain(row))
	}
	return out, nil
}

func (r *FixtureRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("fixtures").
		Where(qb.Eq("fixture_date", fixture.DateKey(date))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fixtures by date query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count fixtures by date: %w", err)
	}
	return count, nil
}

func (r *FixtureRepository) DeleteByDate(ctx context.Context, date time.Time) (int, error) {
	query, args, err := qb.DeleteFrom("fixtures").
		Where(qb.Eq("fixture_date", fixture.DateKey(date))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete fixtures by date query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete fixtures by date: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted fixtures: %w", err)
	}
	return int(deleted), nil
}
