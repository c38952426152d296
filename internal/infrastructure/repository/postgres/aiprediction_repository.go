package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/codrut-p/matchday/internal/domain/aiprediction"
	qb "github.com/codrut-p/matchday/internal/platform/querybuilder"
)

type AIPredictionRepository struct {
	db *sqlx.DB
}

func NewAIPredictionRepository(db *sqlx.DB) *AIPredictionRepository {
	return &AIPredictionRepository{db: db}
}

func (r *AIPredictionRepository) Insert(ctx context.Context, item aiprediction.Prediction) (int64, error) {
	insertModel, err := aiPredictionToInsertModel(item)
	if err != nil {
		return 0, err
	}

	query, args, err := qb.InsertModel("ai_predictions", insertModel, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert ai prediction query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert ai prediction: %w", err)
	}
	return id, nil
}

func (r *AIPredictionRepository) ExistsByFixtureID(ctx context.Context, fixtureID int64) (bool, error) {
	query, args, err := qb.Select("COUNT(*)").From("ai_predictions").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build count ai predictions query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("count ai predictions: %w", err)
	}
	return count > 0, nil
}

func (r *AIPredictionRepository) ListByFixtureID(ctx context.Context, fixtureID int64) ([]aiprediction.Prediction, error) {
	query, args, err := qb.Select("*").From("ai_predictions").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ai predictions query: %w", err)
	}

	var rows []aiPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ai predictions: %w", err)
	}

	out := make([]aiprediction.Prediction, 0, len(rows))
	for _, row := range rows {
		item, err := aiPredictionRowToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
