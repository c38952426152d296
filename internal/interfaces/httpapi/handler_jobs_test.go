package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codrut-p/matchday/internal/domain/majorleague"
	"github.com/codrut-p/matchday/internal/infrastructure/repository/memory"
	"github.com/codrut-p/matchday/internal/platform/resilience"
	"github.com/codrut-p/matchday/internal/usecase"
)

type fixedProvider struct {
	fixtures []usecase.ExternalFixture
}

func (p *fixedProvider) FetchFixturesByDate(_ context.Context, _ time.Time) ([]usecase.ExternalFixture, error) {
	return p.fixtures, nil
}

func (p *fixedProvider) FetchPredictionByFixture(_ context.Context, _ int64) (*usecase.ExternalPredictionBundle, error) {
	return nil, nil
}

func newJobsRouter(t *testing.T, provider usecase.StatsProvider) http.Handler {
	t.Helper()

	fixtureRepo := memory.NewFixtureRepository(nil)
	predictionRepo := memory.NewPredictionRepository()
	aiRepo := memory.NewAIPredictionRepository()
	filter := majorleague.NewFilter([]majorleague.League{{ID: 39, Name: "Premier League", Country: "England"}})

	ingestionService := usecase.NewIngestionService(provider, fixtureRepo, predictionRepo, filter, usecase.IngestionConfig{
		BatchSize:  2,
		BatchDelay: time.Millisecond,
		DateDelay:  time.Millisecond,
		Retry:      resilience.RetryConfig{MaxAttempts: 1, Delay: time.Millisecond},
	}, nil)
	queryService := usecase.NewFixtureQueryService(fixtureRepo, predictionRepo, filter, nil, nil)
	enrichmentService := usecase.NewEnrichmentService(fixtureRepo, predictionRepo, aiRepo, nil, nil)

	handler := NewHandler(queryService, ingestionService, enrichmentService, nil)
	return NewRouter(handler, nil, false, nil, "job-secret")
}

func TestRunIngestionJob_Endpoint(t *testing.T) {
	kickoff := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)
	provider := &fixedProvider{fixtures: []usecase.ExternalFixture{{
		FixtureID:    101,
		KickoffAt:    kickoff,
		LeagueID:     39,
		HomeTeamID:   33,
		HomeTeamName: "Manchester United",
		AwayTeamID:   40,
		AwayTeamName: "Liverpool",
	}}}
	router := newJobsRouter(t, provider)

	body := `{"date": "2026-08-28", "mode": "fixtures"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/ingest", strings.NewReader(body))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	fixturesResult, _ := data["fixtures"].(map[string]any)
	if got, _ := fixturesResult["stored_count"].(float64); int(got) != 1 {
		t.Fatalf("stored_count = %v, want 1", fixturesResult["stored_count"])
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/fixtures?date=2026-08-28", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	listEnvelope := decodeEnvelope(t, listRec.Body.Bytes())
	items, _ := listEnvelope["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("fixtures after ingest = %d, want 1", len(items))
	}
}

func TestRunIngestionJob_RejectsMissingToken(t *testing.T) {
	router := newJobsRouter(t, &fixedProvider{})

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/ingest", strings.NewReader(`{"date": "2026-08-28"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRunIngestionJob_RejectsBadMode(t *testing.T) {
	router := newJobsRouter(t, &fixedProvider{})

	body := `{"date": "2026-08-28", "mode": "everything"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/ingest", strings.NewReader(body))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRunIngestionJob_RejectsBadDate(t *testing.T) {
	router := newJobsRouter(t, &fixedProvider{})

	body := `{"date": "28-08-2026"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/ingest", strings.NewReader(body))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteFixturesByDate_Endpoint(t *testing.T) {
	kickoff := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)
	provider := &fixedProvider{fixtures: []usecase.ExternalFixture{{
		FixtureID:    101,
		KickoffAt:    kickoff,
		LeagueID:     39,
		HomeTeamID:   33,
		AwayTeamID:   40,
		HomeTeamName: "Manchester United",
		AwayTeamName: "Liverpool",
	}}}
	router := newJobsRouter(t, provider)

	ingestReq := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/ingest", strings.NewReader(`{"date": "2026-08-28", "mode": "fixtures"}`))
	ingestReq.Header.Set("X-Internal-Job-Token", "job-secret")
	router.ServeHTTP(httptest.NewRecorder(), ingestReq)

	req := httptest.NewRequest(http.MethodDelete, "/v1/internal/fixtures?date=2026-08-28", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	if got, _ := data["fixtures_deleted"].(float64); int(got) != 1 {
		t.Fatalf("fixtures_deleted = %v, want 1", data["fixtures_deleted"])
	}
}
