package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/codrut-p/matchday/internal/domain/aiprediction"
)

type aiPredictionTableModel struct {
	ID                 int64     `db:"id"`
	FixtureID          int64     `db:"fixture_id"`
	HalfTimeScore      string    `db:"half_time_score"`
	HalfTimeConfidence int       `db:"half_time_confidence"`
	FullTimeScore      string    `db:"full_time_score"`
	FullTimeConfidence int       `db:"full_time_confidence"`
	MatchPredictions   []byte    `db:"match_predictions"`
	ComboPredictions   []byte    `db:"combo_predictions"`
	OffensiveAnalysis  string    `db:"offensive_analysis"`
	DefensiveAnalysis  string    `db:"defensive_analysis"`
	FormAnalysis       string    `db:"form_analysis"`
	KeyInsights        string    `db:"key_insights"`
	CreatedAt          time.Time `db:"created_at"`
}

type aiPredictionInsertModel struct {
	FixtureID          int64  `db:"fixture_id"`
	HalfTimeScore      string `db:"half_time_score"`
	HalfTimeConfidence int    `db:"half_time_confidence"`
	FullTimeScore      string `db:"full_time_score"`
	FullTimeConfidence int    `db:"full_time_confidence"`
	MatchPredictions   []byte `db:"match_predictions"`
	ComboPredictions   []byte `db:"combo_predictions"`
	OffensiveAnalysis  string `db:"offensive_analysis"`
	DefensiveAnalysis  string `db:"defensive_analysis"`
	FormAnalysis       string `db:"form_analysis"`
	KeyInsights        string `db:"key_insights"`
}

// rankedItemJSON is the jsonb shape of one ranked prediction line.
type rankedItemJSON struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
}

func rankedItemsToJSON(items []aiprediction.RankedItem) ([]byte, error) {
	wire := make([]rankedItemJSON, 0, len(items))
	for _, item := range items {
		wire = append(wire, rankedItemJSON{Text: item.Text, Confidence: item.Confidence})
	}
	raw, err := sonic.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode ranked predictions: %w", err)
	}
	return raw, nil
}

func rankedItemsFromJSON(raw []byte) ([]aiprediction.RankedItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var wire []rankedItemJSON
	if err := sonic.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode ranked predictions: %w", err)
	}
	out := make([]aiprediction.RankedItem, 0, len(wire))
	for _, item := range wire {
		out = append(out, aiprediction.RankedItem{Text: item.Text, Confidence: item.Confidence})
	}
	return out, nil
}

func aiPredictionToInsertModel(item aiprediction.Prediction) (aiPredictionInsertModel, error) {
	matchRaw, err := rankedItemsToJSON(item.MatchPredictions)
	if err != nil {
		return aiPredictionInsertModel{}, err
	}
	comboRaw, err := rankedItemsToJSON(item.ComboPredictions)
	if err != nil {
		return aiPredictionInsertModel{}, err
	}

	return aiPredictionInsertModel{
		FixtureID:          item.FixtureID,
		HalfTimeScore:      item.HalfTime.Score,
		HalfTimeConfidence: item.HalfTime.Confidence,
		FullTimeScore:      item.FullTime.Score,
		FullTimeConfidence: item.FullTime.Confidence,
		MatchPredictions:   matchRaw,
		ComboPredictions:   comboRaw,
		OffensiveAnalysis:  item.OffensiveAnalysis,
		DefensiveAnalysis:  item.DefensiveAnalysis,
		FormAnalysis:       item.FormAnalysis,
		KeyInsights:        item.KeyInsights,
	}, nil
}

func aiPredictionRowToDomain(row aiPredictionTableModel) (aiprediction.Prediction, error) {
	matchItems, err := rankedItemsFromJSON(row.MatchPredictions)
	if err != nil {
		return aiprediction.Prediction{}, err
	}
	comboItems, err := rankedItemsFromJSON(row.ComboPredictions)
	if err != nil {
		return aiprediction.Prediction{}, err
	}

	return aiprediction.Prediction{
		ID:                row.ID,
		FixtureID:         row.FixtureID,
		CreatedAt:         row.CreatedAt,
		HalfTime:          aiprediction.ScoreLine{Score: row.HalfTimeScore, Confidence: row.HalfTimeConfidence},
		FullTime:          aiprediction.ScoreLine{Score: row.FullTimeScore, Confidence: row.FullTimeConfidence},
		MatchPredictions:  matchItems,
		ComboPredictions:  comboItems,
		OffensiveAnalysis: row.OffensiveAnalysis,
		DefensiveAnalysis: row.DefensiveAnalysis,
		FormAnalysis:      row.FormAnalysis,
		KeyInsights:       row.KeyInsights,
	}, nil
}
