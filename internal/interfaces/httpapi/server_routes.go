package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures", handler.ListFixturesByDate)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/prediction", handler.GetFixturePrediction)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/prediction/stats", handler.GetFixturePredictionStats)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/ai-predictions", handler.ListFixtureAIPredictions)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/ingest", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIngestionJob)))
	mux.Handle("POST /v1/internal/jobs/ingest-daily", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDailyIngestionJob)))
	mux.Handle("POST /v1/internal/fixtures/{fixtureID}/enrich", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.EnrichFixture)))
	mux.Handle("DELETE /v1/internal/fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.DeleteFixturesByDate)))
}
