package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const fixturesResponseBody = `{
	"response": [
		{
			"fixture": {
				"id": 1208021,
				"date": "2026-08-28T19:00:00+00:00",
				"venue": {"id": 556, "name": "Old Trafford", "city": "Manchester"}
			},
			"league": {"id": 39, "name": "Premier League", "country": "England", "logo": "https://example.test/39.png", "flag": "https://example.test/gb.svg"},
			"teams": {
				"home": {"id": 33, "name": "Manchester United", "logo": "https://example.test/33.png"},
				"away": {"id": 40, "name": "Liverpool", "logo": "https://example.test/40.png"}
			},
			"score": {
				"halftime": {"home": 1, "away": 0},
				"fulltime": {"home": null, "away": null}
			}
		}
	]
}`

const predictionsResponseBody = `{
	"response": [
		{
			"predictions": {
				"winner": {"id": 40, "name": "Liverpool", "comment": "Win or draw"},
				"win_or_draw": true,
				"under_over": "-3.5",
				"goals": {"home": "-2.5", "away": "-1.5"},
				"advice": "Double chance: Liverpool or draw",
				"percent": {"home": "25%", "draw": "30%", "away": "45%"}
			},
			"comparison": {
				"form": {"home": "40%", "away": "60%"},
				"att": {"home": "45%", "away": "55%"},
				"def": {"home": "50%", "away": "50%"},
				"poisson_distribution": {"home": "35%", "away": "65%"},
				"h2h": {"home": "30%", "away": "70%"},
				"goals": {"home": "48%", "away": "52%"},
				"total": {"home": "42%", "away": "58%"}
			},
			"teams": {
				"home": {
					"league": {
						"fixtures": {"played": {"home": 2, "away": 2, "total": 4}},
						"goals": {
							"for": {"minute": {"0-15": {"total": 2, "percentage": "33%"}, "76-90": {"total": 1, "percentage": "17%"}}},
							"against": {"minute": {"31-45": {"total": null, "percentage": null}}}
						},
						"cards": {"yellow": {"0-15": {"total": 1, "percentage": "25%"}}}
					}
				},
				"away": {
					"league": {
						"fixtures": {"played": {"home": 2, "away": 2, "total": 4}},
						"goals": {"for": {"minute": {}}, "against": {"minute": {}}},
						"cards": {"yellow": {}}
					}
				}
			}
		}
	]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Key:        "test-key",
		Timeout:    5 * time.Second,
	})
	return client, server
}

func TestClient_FetchFixturesByDate(t *testing.T) {
	t.Parallel()

	var gotPath, gotDate, gotKey, gotHost string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("date")
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixturesResponseBody))
	}))

	date := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	items, err := client.FetchFixturesByDate(context.Background(), date)
	if err != nil {
		t.Fatalf("FetchFixturesByDate error: %v", err)
	}

	if gotPath != "/fixtures" {
		t.Fatalf("path = %q, want /fixtures", gotPath)
	}
	if gotDate != "2026-08-28" {
		t.Fatalf("date param = %q, want 2026-08-28", gotDate)
	}
	if gotKey != "test-key" {
		t.Fatalf("key header = %q, want test-key", gotKey)
	}
	if gotHost == "" {
		t.Fatal("expected x-rapidapi-host header")
	}

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	item := items[0]
	if item.FixtureID != 1208021 || item.LeagueID != 39 {
		t.Fatalf("ids = %d/%d, want 1208021/39", item.FixtureID, item.LeagueID)
	}
	if item.HomeTeamID != 33 || item.AwayTeamName != "Liverpool" {
		t.Fatalf("teams = %d/%q, want 33/Liverpool", item.HomeTeamID, item.AwayTeamName)
	}
	if !item.KickoffAt.Equal(time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)) {
		t.Fatalf("kickoff = %v, want 2026-08-28T19:00:00Z", item.KickoffAt)
	}
	if item.HalftimeHome == nil || *item.HalftimeHome != 1 {
		t.Fatalf("halftime home = %v, want 1", item.HalftimeHome)
	}
	if item.FulltimeHome != nil {
		t.Fatalf("fulltime home = %v, want nil for unfinished match", *item.FulltimeHome)
	}
}

func TestClient_FetchPredictionByFixture(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fixture") != "1208021" {
			t.Errorf("fixture param = %q, want 1208021", r.URL.Query().Get("fixture"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(predictionsResponseBody))
	}))

	bundle, err := client.FetchPredictionByFixture(context.Background(), 1208021)
	if err != nil {
		t.Fatalf("FetchPredictionByFixture error: %v", err)
	}
	if bundle == nil {
		t.Fatal("expected prediction bundle")
	}

	if bundle.FixtureID != 1208021 {
		t.Fatalf("fixture id = %d, want 1208021", bundle.FixtureID)
	}
	if bundle.WinnerTeamID == nil || *bundle.WinnerTeamID != 40 {
		t.Fatalf("winner id = %v, want 40", bundle.WinnerTeamID)
	}
	if bundle.WinnerName == nil || *bundle.WinnerName != "Liverpool" {
		t.Fatalf("winner name = %v, want Liverpool", bundle.WinnerName)
	}
	if !bundle.WinOrDraw {
		t.Fatal("expected win_or_draw true")
	}
	if bundle.Comparison.PoissonAway != "65%" {
		t.Fatalf("poisson away = %q, want 65%%", bundle.Comparison.PoissonAway)
	}

	form := bundle.HomeForm
	if form.GamesTotal != 4 || form.GamesHome != 2 || form.GamesAway != 2 {
		t.Fatalf("games = %d/%d/%d, want 4/2/2", form.GamesTotal, form.GamesHome, form.GamesAway)
	}
	if v := form.ScoredHome["0-15"]; v == nil || *v != 2 {
		t.Fatalf("scored bucket 0-15 = %v, want 2", v)
	}
	if v := form.ConcededHome["31-45"]; v != nil {
		t.Fatalf("conceded bucket 31-45 = %v, want nil for null total", *v)
	}
}

func TestClient_FetchPredictionByFixture_EmptyResponse(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": []}`))
	}))

	bundle, err := client.FetchPredictionByFixture(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchPredictionByFixture error: %v", err)
	}
	if bundle != nil {
		t.Fatalf("bundle = %+v, want nil for empty response", bundle)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": []}`))
	}))
	client.maxRetries = 1

	if _, err := client.FetchFixturesByDate(context.Background(), time.Now()); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestClient_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	client.maxRetries = 2

	if _, err := client.FetchFixturesByDate(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for 403 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1 for non-retryable status", got)
	}
}
