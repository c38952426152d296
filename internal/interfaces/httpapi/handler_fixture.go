package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/codrut-p/matchday/internal/domain/aiprediction"
	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/domain/prediction"
)

func (h *Handler) ListFixturesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByDate")
	defer span.End()

	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	majorOnly := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("major_only")), "true")

	fixtures, err := h.queryService.ListFixturesByDate(ctx, date, majorOnly)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "date", fixture.DateKey(date), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(ctx, f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID, err := parseFixtureIDPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.queryService.GetFixture(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(ctx, item))
}

func (h *Handler) GetFixturePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixturePrediction")
	defer span.End()

	fixtureID, err := parseFixtureIDPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.queryService.GetPrediction(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get prediction failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(ctx, item))
}

func (h *Handler) GetFixturePredictionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixturePredictionStats")
	defer span.End()

	fixtureID, err := parseFixtureIDPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.queryService.GetPredictionStats(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get prediction stats failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(ctx, item))
}

func (h *Handler) ListFixtureAIPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtureAIPredictions")
	defer span.End()

	fixtureID, err := parseFixtureIDPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.enrichmentService.ListEnrichments(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "list ai predictions failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]aiPredictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, aiPredictionToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) EnrichFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnrichFixture")
	defer span.End()

	fixtureID, err := parseFixtureIDPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.enrichmentService.Enrich(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "enrich fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, aiPredictionToDTO(ctx, item))
}

type fixtureDTO struct {
	FixtureID       int64   `json:"fixtureId"`
	KickoffAt       string  `json:"kickoffAt"`
	VenueID         *int64  `json:"venueId,omitempty"`
	VenueName       string  `json:"venueName"`
	VenueCity       string  `json:"venueCity"`
	LeagueID        int64   `json:"leagueId"`
	LeagueName      string  `json:"leagueName"`
	LeagueCountry   string  `json:"leagueCountry"`
	LeagueLogoURL   string  `json:"leagueLogoUrl"`
	LeagueFlagURL   string  `json:"leagueFlagUrl"`
	HomeTeamID      int64   `json:"homeTeamId"`
	HomeTeamName    string  `json:"homeTeamName"`
	HomeTeamLogoURL string  `json:"homeTeamLogoUrl"`
	AwayTeamID      int64   `json:"awayTeamId"`
	AwayTeamName    string  `json:"awayTeamName"`
	AwayTeamLogoURL string  `json:"awayTeamLogoUrl"`
	HalftimeHome    *int    `json:"halftimeHome,omitempty"`
	HalftimeAway    *int    `json:"halftimeAway,omitempty"`
	FulltimeHome    *int    `json:"fulltimeHome,omitempty"`
	FulltimeAway    *int    `json:"fulltimeAway,omitempty"`
}

type predictionDTO struct {
	FixtureID     int64   `json:"fixtureId"`
	WinnerTeamID  *int64  `json:"winnerTeamId,omitempty"`
	WinnerName    *string `json:"winnerName,omitempty"`
	WinnerComment *string `json:"winnerComment,omitempty"`
	WinOrDraw     bool    `json:"winOrDraw"`
	UnderOver     *string `json:"underOver,omitempty"`
	GoalsHome     *string `json:"goalsHome,omitempty"`
	GoalsAway     *string `json:"goalsAway,omitempty"`
	Advice        string  `json:"advice"`
	PercentHome   string  `json:"percentHome"`
	PercentDraw   string  `json:"percentDraw"`
	PercentAway   string  `json:"percentAway"`

	Comparison predictionComparisonDTO `json:"comparison"`
}

type predictionComparisonDTO struct {
	FormHome    string `json:"formHome"`
	FormAway    string `json:"formAway"`
	AttackHome  string `json:"attackHome"`
	AttackAway  string `json:"attackAway"`
	DefenseHome string `json:"defenseHome"`
	DefenseAway string `json:"defenseAway"`
	PoissonHome string `json:"poissonHome"`
	PoissonAway string `json:"poissonAway"`
	H2HHome     string `json:"h2hHome"`
	H2HAway     string `json:"h2hAway"`
	GoalsHome   string `json:"goalsHome"`
	GoalsAway   string `json:"goalsAway"`
	TotalHome   string `json:"totalHome"`
	TotalAway   string `json:"totalAway"`
}

type statsTeamDTO struct {
	YellowFirstHalf        *float64 `json:"yellowFirstHalf"`
	YellowSecondHalf       *float64 `json:"yellowSecondHalf"`
	ScoredHomeFirstHalf    *float64 `json:"scoredHomeFirstHalf"`
	ScoredHomeSecondHalf   *float64 `json:"scoredHomeSecondHalf"`
	ScoredAwayFirstHalf    *float64 `json:"scoredAwayFirstHalf"`
	ScoredAwaySecondHalf   *float64 `json:"scoredAwaySecondHalf"`
	ConcededHomeFirstHalf  *float64 `json:"concededHomeFirstHalf"`
	ConcededHomeSecondHalf *float64 `json:"concededHomeSecondHalf"`
	ConcededAwayFirstHalf  *float64 `json:"concededAwayFirstHalf"`
	ConcededAwaySecondHalf *float64 `json:"concededAwaySecondHalf"`
}

type statsDTO struct {
	FixtureID int64        `json:"fixtureId"`
	Home      statsTeamDTO `json:"home"`
	Away      statsTeamDTO `json:"away"`
}

type rankedItemDTO struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
}

type scoreLineDTO struct {
	Score      string `json:"score"`
	Confidence int    `json:"confidence"`
}

type aiPredictionDTO struct {
	ID                int64           `json:"id"`
	FixtureID         int64           `json:"fixtureId"`
	CreatedAt         string          `json:"createdAt"`
	HalfTime          scoreLineDTO    `json:"halfTimeScore"`
	FullTime          scoreLineDTO    `json:"fullTimeScore"`
	MatchPredictions  []rankedItemDTO `json:"matchPredictions"`
	ComboPredictions  []rankedItemDTO `json:"comboPredictions"`
	OffensiveAnalysis string          `json:"offensiveAnalysis"`
	DefensiveAnalysis string          `json:"defensiveAnalysis"`
	FormAnalysis      string          `json:"formAnalysis"`
	KeyInsights       string          `json:"keyInsights"`
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		FixtureID:       v.FixtureID,
		KickoffAt:       formatKickoff(v.KickoffAt),
		VenueID:         v.VenueID,
		VenueName:       v.VenueName,
		VenueCity:       v.VenueCity,
		LeagueID:        v.LeagueID,
		LeagueName:      v.LeagueName,
		LeagueCountry:   v.LeagueCountry,
		LeagueLogoURL:   v.LeagueLogoURL,
		LeagueFlagURL:   v.LeagueFlagURL,
		HomeTeamID:      v.HomeTeamID,
		HomeTeamName:    v.HomeTeamName,
		HomeTeamLogoURL: v.HomeTeamLogoURL,
		AwayTeamID:      v.AwayTeamID,
		AwayTeamName:    v.AwayTeamName,
		AwayTeamLogoURL: v.AwayTeamLogoURL,
		HalftimeHome:    v.HalftimeHome,
		HalftimeAway:    v.HalftimeAway,
		FulltimeHome:    v.FulltimeHome,
		FulltimeAway:    v.FulltimeAway,
	}
}

func predictionToDTO(ctx context.Context, v prediction.Prediction) predictionDTO {
	ctx, span := startSpan(ctx, "httpapi.predictionToDTO")
	defer span.End()

	return predictionDTO{
		FixtureID:     v.FixtureID,
		WinnerTeamID:  v.WinnerTeamID,
		WinnerName:    v.WinnerName,
		WinnerComment: v.WinnerComment,
		WinOrDraw:     v.WinOrDraw,
		UnderOver:     v.UnderOver,
		GoalsHome:     v.GoalsHome,
		GoalsAway:     v.GoalsAway,
		Advice:        v.Advice,
		PercentHome:   v.PercentHome,
		PercentDraw:   v.PercentDraw,
		PercentAway:   v.PercentAway,
		Comparison: predictionComparisonDTO{
			FormHome:    v.FormHome,
			FormAway:    v.FormAway,
			AttackHome:  v.AttackHome,
			AttackAway:  v.AttackAway,
			DefenseHome: v.DefenseHome,
			DefenseAway: v.DefenseAway,
			PoissonHome: v.PoissonHome,
			PoissonAway: v.PoissonAway,
			H2HHome:     v.H2HHome,
			H2HAway:     v.H2HAway,
			GoalsHome:   v.GoalsCompHome,
			GoalsAway:   v.GoalsCompAway,
			TotalHome:   v.TotalHome,
			TotalAway:   v.TotalAway,
		},
	}
}

func statsToDTO(ctx context.Context, v prediction.Stats) statsDTO {
	ctx, span := startSpan(ctx, "httpapi.statsToDTO")
	defer span.End()

	return statsDTO{
		FixtureID: v.FixtureID,
		Home: statsTeamDTO{
			YellowFirstHalf:        v.HomeYellowFirstHalf,
			YellowSecondHalf:       v.HomeYellowSecondHalf,
			ScoredHomeFirstHalf:    v.HomeScoredHomeFirstHalf,
			ScoredHomeSecondHalf:   v.HomeScoredHomeSecondHalf,
			ScoredAwayFirstHalf:    v.HomeScoredAwayFirstHalf,
			ScoredAwaySecondHalf:   v.HomeScoredAwaySecondHalf,
			ConcededHomeFirstHalf:  v.HomeConcededHomeFirstHalf,
			ConcededHomeSecondHalf: v.HomeConcededHomeSecondHalf,
			ConcededAwayFirstHalf:  v.HomeConcededAwayFirstHalf,
			ConcededAwaySecondHalf: v.HomeConcededAwaySecondHalf,
		},
		Away: statsTeamDTO{
			YellowFirstHalf:        v.AwayYellowFirstHalf,
			YellowSecondHalf:       v.AwayYellowSecondHalf,
			ScoredHomeFirstHalf:    v.AwayScoredHomeFirstHalf,
			ScoredHomeSecondHalf:   v.AwayScoredHomeSecondHalf,
			ScoredAwayFirstHalf:    v.AwayScoredAwayFirstHalf,
			ScoredAwaySecondHalf:   v.AwayScoredAwaySecondHalf,
			ConcededHomeFirstHalf:  v.AwayConcededHomeFirstHalf,
			ConcededHomeSecondHalf: v.AwayConcededHomeSecondHalf,
			ConcededAwayFirstHalf:  v.AwayConcededAwayFirstHalf,
			ConcededAwaySecondHalf: v.AwayConcededAwaySecondHalf,
		},
	}
}

func aiPredictionToDTO(ctx context.Context, v aiprediction.Prediction) aiPredictionDTO {
	ctx, span := startSpan(ctx, "httpapi.aiPredictionToDTO")
	defer span.End()

	matchItems := make([]rankedItemDTO, 0, len(v.MatchPredictions))
	for _, item := range v.MatchPredictions {
		matchItems = append(matchItems, rankedItemDTO{Text: item.Text, Confidence: item.Confidence})
	}
	comboItems := make([]rankedItemDTO, 0, len(v.ComboPredictions))
	for _, item := range v.ComboPredictions {
		comboItems = append(comboItems, rankedItemDTO{Text: item.Text, Confidence: item.Confidence})
	}

	return aiPredictionDTO{
		ID:                v.ID,
		FixtureID:         v.FixtureID,
		CreatedAt:         v.CreatedAt.UTC().Format(time.RFC3339),
		HalfTime:          scoreLineDTO{Score: v.HalfTime.Score, Confidence: v.HalfTime.Confidence},
		FullTime:          scoreLineDTO{Score: v.FullTime.Score, Confidence: v.FullTime.Confidence},
		MatchPredictions:  matchItems,
		ComboPredictions:  comboItems,
		OffensiveAnalysis: v.OffensiveAnalysis,
		DefensiveAnalysis: v.DefensiveAnalysis,
		FormAnalysis:      v.FormAnalysis,
		KeyInsights:       v.KeyInsights,
	}
}
