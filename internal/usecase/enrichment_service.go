package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"

	"github.com/codrut-p/matchday/internal/domain/aiprediction"
	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/prediction"
	"github.com/codrut-p/matchday/internal/platform/logging"
)

// Generator is the text generation backend. It receives a fully rendered
// prompt and returns the raw completion, which must be a JSON document.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type EnrichmentService struct {
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	aiRepo         aiprediction.Repository
	generator      Generator
	validate       *validator.Validate
	logger         *logging.Logger
	now            func() time.Time
}

func NewEnrichmentService(
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
	aiRepo aiprediction.Repository,
	generator Generator,
	logger *logging.Logger,
) *EnrichmentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EnrichmentService{
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		aiRepo:         aiRepo,
		generator:      generator,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger,
		now:            time.Now,
	}
}

type generatedScore struct {
	Prediction string `json:"prediction" validate:"required"`
	Confidence int    `json:"confidence" validate:"min=0,max=100"`
}

type generatedRanked struct {
	Prediction string `json:"prediction" validate:"required"`
	Confidence int    `json:"confidence" validate:"min=0,max=100"`
}

type generatedMatchPredictions struct {
	Prediction1 generatedRanked `json:"prediction_1" validate:"required"`
	Prediction2 generatedRanked `json:"prediction_2" validate:"required"`
	Prediction3 generatedRanked `json:"prediction_3" validate:"required"`
	Prediction4 generatedRanked `json:"prediction_4" validate:"required"`
	Prediction5 generatedRanked `json:"prediction_5" validate:"required"`
}

type generatedComboPredictions struct {
	Combo1 generatedRanked `json:"combo_1" validate:"required"`
	Combo2 generatedRanked `json:"combo_2" validate:"required"`
	Combo3 generatedRanked `json:"combo_3" validate:"required"`
	Combo4 generatedRanked `json:"combo_4" validate:"required"`
	Combo5 generatedRanked `json:"combo_5" validate:"required"`
}

type generatedReasoning struct {
	OffensiveAnalysis string `json:"offensive_analysis" validate:"required"`
	DefensiveAnalysis string `json:"defensive_analysis" validate:"required"`
	FormAnalysis      string `json:"form_analysis" validate:"required"`
	KeyInsights       string `json:"key_insights" validate:"required"`
}

type generatedResponse struct {
	HalfTimeScore    generatedScore            `json:"half_time_score" validate:"required"`
	FullTimeScore    generatedScore            `json:"full_time_score" validate:"required"`
	MatchPredictions generatedMatchPredictions `json:"match_predictions" validate:"required"`
	ComboPredictions generatedComboPredictions `json:"combo_predictions" validate:"required"`
	Reasoning        generatedReasoning        `json:"reasoning" validate:"required"`
}

// Enrich runs one generation pass for a fixture that already has a
// prediction and stats stored. A malformed or schema-mismatched response
// fails the call without storing anything; the caller decides whether to
// try again.
func (s *EnrichmentService) Enrich(ctx context.Context, fixtureID int64) (aiprediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.Enrich")
	defer span.End()

	if fixtureID <= 0 {
		return aiprediction.Prediction{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	if s.generator == nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: generation backend is not configured", ErrDependencyUnavailable)
	}

	fx, ok, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: load fixture=%d: %v", ErrStore, fixtureID, err)
	}
	if !ok {
		return aiprediction.Prediction{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, fixtureID)
	}

	pred, ok, err := s.predictionRepo.GetByFixtureID(ctx, fixtureID)
	if err != nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: load prediction fixture=%d: %v", ErrStore, fixtureID, err)
	}
	if !ok {
		return aiprediction.Prediction{}, fmt.Errorf("%w: prediction for fixture=%d", ErrNotFound, fixtureID)
	}

	stats, ok, err := s.predictionRepo.GetStatsByFixtureID(ctx, fixtureID)
	if err != nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: load prediction stats fixture=%d: %v", ErrStore, fixtureID, err)
	}
	if !ok {
		return aiprediction.Prediction{}, fmt.Errorf("%w: prediction stats for fixture=%d", ErrNotFound, fixtureID)
	}

	prompt := buildEnrichmentPrompt(fx, pred, stats)
	raw, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: generate prediction fixture=%d: %v", ErrDependencyUnavailable, fixtureID, err)
	}

	var parsed generatedResponse
	if err := sonic.UnmarshalString(raw, &parsed); err != nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: fixture=%d: %v", ErrParse, fixtureID, err)
	}
	if err := s.validate.Struct(parsed); err != nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: fixture=%d: %v", ErrParse, fixtureID, err)
	}

	item := mapGeneratedToDomain(fixtureID, parsed, s.now().UTC())
	id, err := s.aiRepo.Insert(ctx, item)
	if err != nil {
		return aiprediction.Prediction{}, fmt.Errorf("%w: insert generated prediction fixture=%d: %v", ErrStore, fixtureID, err)
	}
	item.ID = id

	s.logger.InfoContext(ctx, "stored generated prediction", "fixture_id", fixtureID, "id", id)
	return item, nil
}

// HasEnrichment reports whether at least one generation run exists for the
// fixture. Display logic keys off this instead of a uniqueness constraint.
func (s *EnrichmentService) HasEnrichment(ctx context.Context, fixtureID int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.HasEnrichment")
	defer span.End()

	if fixtureID <= 0 {
		return false, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	exists, err := s.aiRepo.ExistsByFixtureID(ctx, fixtureID)
	if err != nil {
		return false, fmt.Errorf("%w: check generated prediction fixture=%d: %v", ErrStore, fixtureID, err)
	}
	return exists, nil
}

func (s *EnrichmentService) ListEnrichments(ctx context.Context, fixtureID int64) ([]aiprediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.ListEnrichments")
	defer span.End()

	if fixtureID <= 0 {
		return nil, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	items, err := s.aiRepo.ListByFixtureID(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("%w: list generated predictions fixture=%d: %v", ErrStore, fixtureID, err)
	}
	return items, nil
}

func mapGeneratedToDomain(fixtureID int64, parsed generatedResponse, createdAt time.Time) aiprediction.Prediction {
	ranked := func(item generatedRanked) aiprediction.RankedItem {
		return aiprediction.RankedItem{Text: item.Prediction, Confidence: item.Confidence}
	}

	return aiprediction.Prediction{
		FixtureID: fixtureID,
		CreatedAt: createdAt,
		HalfTime: aiprediction.ScoreLine{
			Score:      parsed.HalfTimeScore.Prediction,
			Confidence: parsed.HalfTimeScore.Confidence,
		},
		FullTime: aiprediction.ScoreLine{
			Score:      parsed.FullTimeScore.Prediction,
			Confidence: parsed.FullTimeScore.Confidence,
		},
		MatchPredictions: []aiprediction.RankedItem{
			ranked(parsed.MatchPredictions.Prediction1),
			ranked(parsed.MatchPredictions.Prediction2),
			ranked(parsed.MatchPredictions.Prediction3),
			ranked(parsed.MatchPredictions.Prediction4),
			ranked(parsed.MatchPredictions.Prediction5),
		},
		ComboPredictions: []aiprediction.RankedItem{
			ranked(parsed.ComboPredictions.Combo1),
			ranked(parsed.ComboPredictions.Combo2),
			ranked(parsed.ComboPredictions.Combo3),
			ranked(parsed.ComboPredictions.Combo4),
			ranked(parsed.ComboPredictions.Combo5),
		},
		OffensiveAnalysis: parsed.Reasoning.OffensiveAnalysis,
		DefensiveAnalysis: parsed.Reasoning.DefensiveAnalysis,
		FormAnalysis:      parsed.Reasoning.FormAnalysis,
		KeyInsights:       parsed.Reasoning.KeyInsights,
	}
}

// buildEnrichmentPrompt flattens the stored prediction and stats into the
// metric list the prompt template expects, one metric per line.
func buildEnrichmentPrompt(fx fixture.Fixture, pred prediction.Prediction, stats prediction.Stats) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeMetric := func(name, value string) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString(",\n")
	}
	writeAvg := func(name string, value *float64) {
		if value == nil {
			writeMetric(name, "None")
			return
		}
		writeMetric(name, fmt.Sprintf("%.2f", *value))
	}

	buf.WriteString("You are a football analyst. Based on the pre-match metrics below, ")
	buf.WriteString("produce a JSON object with exactly these top-level keys: ")
	buf.WriteString(`"half_time_score", "full_time_score", "match_predictions", "combo_predictions", "reasoning". `)
	buf.WriteString(`"half_time_score" and "full_time_score" are objects with "prediction" (a scoreline such as "1-0") and "confidence" (0-100). `)
	buf.WriteString(`"match_predictions" holds "prediction_1" through "prediction_5", "combo_predictions" holds "combo_1" through "combo_5", `)
	buf.WriteString(`each an object with "prediction" and "confidence", ranked most likely first. `)
	buf.WriteString(`"reasoning" holds "offensive_analysis", "defensive_analysis", "form_analysis" and "key_insights" as text. `)
	buf.WriteString("Respond with the JSON document only.\n\n")

	writeMetric("home_team_name", fx.HomeTeamName)
	writeMetric("away_team_name", fx.AwayTeamName)
	writeMetric("comp_form_home", pred.FormHome)
	writeMetric("comp_form_away", pred.FormAway)
	writeMetric("comp_att_home", pred.AttackHome)
	writeMetric("comp_att_away", pred.AttackAway)
	writeMetric("comp_def_home", pred.DefenseHome)
	writeMetric("comp_def_away", pred.DefenseAway)
	writeMetric("comp_poisson_home", pred.PoissonHome)
	writeMetric("comp_poisson_away", pred.PoissonAway)
	writeMetric("comp_h2h_home", pred.H2HHome)
	writeMetric("comp_h2h_away", pred.H2HAway)
	writeMetric("comp_goals_home", pred.GoalsCompHome)
	writeMetric("comp_goals_away", pred.GoalsCompAway)
	writeMetric("comp_total_home", pred.TotalHome)
	writeMetric("comp_total_away", pred.TotalAway)

	writeAvg("home_team_yellow_cards_first_half_average", stats.HomeYellowFirstHalf)
	writeAvg("home_team_yellow_cards_second_half_average", stats.HomeYellowSecondHalf)
	writeAvg("home_team_scored_home_first_half_average", stats.HomeScoredHomeFirstHalf)
	writeAvg("home_team_scored_home_second_half_average", stats.HomeScoredHomeSecondHalf)
	writeAvg("home_team_scored_away_first_half_average", stats.HomeScoredAwayFirstHalf)
	writeAvg("home_team_scored_away_second_half_average", stats.HomeScoredAwaySecondHalf)
	writeAvg("home_team_conceded_home_first_half_average", stats.HomeConcededHomeFirstHalf)
	writeAvg("home_team_conceded_home_second_half_average", stats.HomeConcededHomeSecondHalf)
	writeAvg("home_team_conceded_away_first_half_average", stats.HomeConcededAwayFirstHalf)
	writeAvg("home_team_conceded_away_second_half_average", stats.HomeConcededAwaySecondHalf)
	writeAvg("away_team_yellow_cards_first_half_average", stats.AwayYellowFirstHalf)
	writeAvg("away_team_yellow_cards_second_half_average", stats.AwayYellowSecondHalf)
	writeAvg("away_team_scored_home_first_half_average", stats.AwayScoredHomeFirstHalf)
	writeAvg("away_team_scored_home_second_half_average", stats.AwayScoredHomeSecondHalf)
	writeAvg("away_team_scored_away_first_half_average", stats.AwayScoredAwayFirstHalf)
	writeAvg("away_team_scored_away_second_half_average", stats.AwayScoredAwaySecondHalf)
	writeAvg("away_team_conceded_home_first_half_average", stats.AwayConcededHomeFirstHalf)
	writeAvg("away_team_conceded_home_second_half_average", stats.AwayConcededHomeSecondHalf)
	writeAvg("away_team_conceded_away_first_half_average", stats.AwayConcededAwayFirstHalf)
	writeAvg("away_team_conceded_away_second_half_average", stats.AwayConcededAwaySecondHalf)

	return buf.String()
}
