package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/codrut-p/matchday/external/apifootball"
	"github.com/codrut-p/matchday/external/llm"
	"github.com/codrut-p/matchday/internal/config"
	"github.com/codrut-p/matchday/internal/domain/aiprediction"
	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/majorleague"
	"github.com/codrut-p/matchday/internal/domain/prediction"
	repocache "github.com/codrut-p/matchday/internal/infrastructure/repository/cache"
	"github.com/codrut-p/matchday/internal/infrastructure/repository/postgres"
	"github.com/codrut-p/matchday/internal/interfaces/httpapi"
	"github.com/codrut-p/matchday/internal/platform/cache"
	"github.com/codrut-p/matchday/internal/platform/logging"
	"github.com/codrut-p/matchday/internal/platform/resilience"
	"github.com/codrut-p/matchday/internal/usecase"
)

// App bundles the wired HTTP server, the daily ingestion scheduler and the
// shared database handle so main can manage their lifecycles.
type App struct {
	Server    *http.Server
	Scheduler *usecase.DailyScheduler
	DB        *sqlx.DB
}

// New wires repositories, external clients and services into a runnable
// application. httpLogger feeds the request middleware; svcLogger feeds the
// services and external clients.
func New(cfg config.Config, httpLogger *slog.Logger, svcLogger *logging.Logger) (*App, error) {
	if svcLogger == nil {
		svcLogger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePrepared),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	majorLeagues, err := majorleague.LoadFromFile(cfg.MajorLeaguesPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load major leagues: %w", err)
	}

	var (
		fixtureRepo    fixture.Repository      = postgres.NewFixtureRepository(db)
		predictionRepo prediction.Repository   = postgres.NewPredictionRepository(db)
		aiRepo         aiprediction.Repository = postgres.NewAIPredictionRepository(db)
	)

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		APIHost:    cfg.APIFootballHost,
		Key:        cfg.APIFootballKey,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     svcLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})

	generator := llm.NewClient(llm.ClientConfig{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
		Timeout:     cfg.LLMTimeout,
		Logger:      svcLogger,
	})

	var listCache *cache.Store
	if cfg.CacheEnabled {
		listCache = cache.NewStore(cfg.CacheTTL)
		lookupCache := cache.NewStore(cfg.CacheTTL)
		fixtureRepo = repocache.NewFixtureRepository(fixtureRepo, lookupCache)
		predictionRepo = repocache.NewPredictionRepository(predictionRepo, lookupCache)
		aiRepo = repocache.NewAIPredictionRepository(aiRepo, lookupCache)
	}

	ingestionSvc := usecase.NewIngestionService(provider, fixtureRepo, predictionRepo, majorLeagues, usecase.IngestionConfig{
		BatchSize:    cfg.IngestBatchSize,
		BatchDelay:   cfg.IngestBatchDelay,
		DateDelay:    cfg.IngestDateDelay,
		ScheduleDays: cfg.ScheduleDays,
		Retry: resilience.RetryConfig{
			MaxAttempts: cfg.IngestRetryMax,
			Delay:       cfg.IngestRetryDelay,
		},
	}, svcLogger)
	querySvc := usecase.NewFixtureQueryService(fixtureRepo, predictionRepo, majorLeagues, listCache, svcLogger)
	enrichmentSvc := usecase.NewEnrichmentService(fixtureRepo, predictionRepo, aiRepo, generator, svcLogger)

	var scheduler *usecase.DailyScheduler
	if cfg.ScheduleEnabled {
		scheduler = usecase.NewDailyScheduler(ingestionSvc, usecase.SchedulerConfig{
			Enabled:       true,
			Hour:          cfg.ScheduleHour,
			Minute:        cfg.ScheduleMinute,
			CheckInterval: cfg.ScheduleCheckEvery,
		}, svcLogger)
	}

	handler := httpapi.NewHandler(querySvc, ingestionSvc, enrichmentSvc, httpLogger)
	router := httpapi.NewRouter(handler, httpLogger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Scheduler: scheduler,
		DB:        db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
