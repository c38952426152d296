package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/prediction"
	"github.com/codrut-p/matchday/internal/infrastructure/repository/memory"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const validGeneratedResponse = `{
	"half_time_score": {"prediction": "1-0", "confidence": 60},
	"full_time_score": {"prediction": "2-1", "confidence": 55},
	"match_predictions": {
		"prediction_1": {"prediction": "Home win", "confidence": 62},
		"prediction_2": {"prediction": "Over 1.5 goals", "confidence": 71},
		"prediction_3": {"prediction": "Both teams to score", "confidence": 58},
		"prediction_4": {"prediction": "Under 3.5 goals", "confidence": 66},
		"prediction_5": {"prediction": "Home clean sheet", "confidence": 41}
	},
	"combo_predictions": {
		"combo_1": {"prediction": "Home win and over 1.5", "confidence": 52},
		"combo_2": {"prediction": "Home win and BTTS", "confidence": 44},
		"combo_3": {"prediction": "Draw or home and under 3.5", "confidence": 61},
		"combo_4": {"prediction": "Home -1 handicap", "confidence": 35},
		"combo_5": {"prediction": "Over 0.5 first half goals", "confidence": 68}
	},
	"reasoning": {
		"offensive_analysis": "Home side create more from open play.",
		"defensive_analysis": "Away side concede early at home and away.",
		"form_analysis": "Home team unbeaten in five.",
		"key_insights": "First half goals likely on both sides."
	}
}`

func newEnrichmentFixtures(t *testing.T) (*memory.FixtureRepository, *memory.PredictionRepository) {
	t.Helper()

	avg := 1.5
	fixtureRepo := memory.NewFixtureRepository([]fixture.Fixture{{
		FixtureID:    401,
		LeagueID:     39,
		KickoffAt:    time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC),
		HomeTeamID:   10,
		HomeTeamName: "Arsenal",
		AwayTeamID:   20,
		AwayTeamName: "Chelsea",
	}})
	predictionRepo := memory.NewPredictionRepository()
	if err := predictionRepo.Upsert(context.Background(), prediction.Prediction{
		FixtureID: 401,
		Advice:    "Double chance",
		FormHome:  "60%",
		FormAway:  "40%",
	}); err != nil {
		t.Fatalf("seed prediction: %v", err)
	}
	if err := predictionRepo.UpsertStats(context.Background(), prediction.Stats{
		FixtureID:           401,
		HomeYellowFirstHalf: &avg,
	}); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	return fixtureRepo, predictionRepo
}

func TestEnrichmentService_Enrich(t *testing.T) {
	t.Parallel()

	fixtureRepo, predictionRepo := newEnrichmentFixtures(t)
	aiRepo := memory.NewAIPredictionRepository()
	gen := &stubGenerator{response: validGeneratedResponse}
	svc := NewEnrichmentService(fixtureRepo, predictionRepo, aiRepo, gen, nil)

	item, err := svc.Enrich(context.Background(), 401)
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}

	if item.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if item.FullTime.Score != "2-1" || item.FullTime.Confidence != 55 {
		t.Fatalf("full time = %+v, want 2-1 at 55", item.FullTime)
	}
	if len(item.MatchPredictions) != 5 || len(item.ComboPredictions) != 5 {
		t.Fatalf("prediction groups = %d/%d, want 5/5", len(item.MatchPredictions), len(item.ComboPredictions))
	}
	if item.MatchPredictions[0].Text != "Home win" {
		t.Fatalf("first match prediction = %q, want rank order preserved", item.MatchPredictions[0].Text)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	for _, needle := range []string{
		"home_team_name: Arsenal",
		"comp_form_home: 60%",
		"home_team_yellow_cards_first_half_average: 1.50",
		"home_team_scored_home_first_half_average: None",
	} {
		if !strings.Contains(prompt, needle) {
			t.Fatalf("prompt missing %q", needle)
		}
	}

	exists, err := svc.HasEnrichment(context.Background(), 401)
	if err != nil {
		t.Fatalf("HasEnrichment error: %v", err)
	}
	if !exists {
		t.Fatal("expected enrichment to exist after insert")
	}

	// A second run appends instead of overwriting.
	if _, err := svc.Enrich(context.Background(), 401); err != nil {
		t.Fatalf("second Enrich error: %v", err)
	}
	items, err := svc.ListEnrichments(context.Background(), 401)
	if err != nil {
		t.Fatalf("ListEnrichments error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("stored runs = %d, want 2", len(items))
	}
}

func TestEnrichmentService_Enrich_ParseFailureStoresNothing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		response string
	}{
		{name: "malformed json", response: "not json at all"},
		{name: "missing group", response: `{"half_time_score": {"prediction": "1-0", "confidence": 60}}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fixtureRepo, predictionRepo := newEnrichmentFixtures(t)
			aiRepo := memory.NewAIPredictionRepository()
			svc := NewEnrichmentService(fixtureRepo, predictionRepo, aiRepo, &stubGenerator{response: tc.response}, nil)

			_, err := svc.Enrich(context.Background(), 401)
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}

			exists, _ := aiRepo.ExistsByFixtureID(context.Background(), 401)
			if exists {
				t.Fatal("expected no partial record stored on parse failure")
			}
		})
	}
}

func TestEnrichmentService_Enrich_MissingPredictionIsNotFound(t *testing.T) {
	t.Parallel()

	fixtureRepo, _ := newEnrichmentFixtures(t)
	svc := NewEnrichmentService(fixtureRepo, memory.NewPredictionRepository(), memory.NewAIPredictionRepository(), &stubGenerator{response: validGeneratedResponse}, nil)

	_, err := svc.Enrich(context.Background(), 401)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnrichmentService_Enrich_GeneratorFailure(t *testing.T) {
	t.Parallel()

	fixtureRepo, predictionRepo := newEnrichmentFixtures(t)
	svc := NewEnrichmentService(fixtureRepo, predictionRepo, memory.NewAIPredictionRepository(), &stubGenerator{err: errors.New("rate limited")}, nil)

	_, err := svc.Enrich(context.Background(), 401)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
