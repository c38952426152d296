package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/codrut-p/matchday/internal/domain/fixture"
	"github.com/codrut-p/matchday/internal/usecase"
)

type runIngestionRequest struct {
	Date string `json:"date" validate:"required"`
	Mode string `json:"mode"`
}

// RunIngestionJob triggers one ingestion pass for a single date. Mode
// selects fixtures only, predictions only, or both; it defaults to both.
func (h *Handler) RunIngestionJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestionJob")
	defer span.End()

	var req runIngestionRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	mode := usecase.IngestModeAll
	if req.Mode != "" {
		mode, err = usecase.ParseIngestMode(req.Mode)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	result, err := h.ingestionService.RunForDate(ctx, date, mode)
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion run failed", "date", fixture.DateKey(date), "mode", string(mode), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.queryService.InvalidateDate(ctx, date)
	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunDailyIngestionJob runs the same pass the scheduler fires at 00:01 UTC,
// covering today plus the configured number of upcoming days.
func (h *Handler) RunDailyIngestionJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDailyIngestionJob")
	defer span.End()

	now := time.Now().UTC()
	results, err := h.ingestionService.RunDaily(ctx, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "daily ingestion run failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	for _, result := range results {
		if date, parseErr := parseDateParam(result.Date); parseErr == nil {
			h.queryService.InvalidateDate(ctx, date)
		}
	}

	writeSuccess(ctx, w, http.StatusOK, results)
}

// DeleteFixturesByDate wipes a date so it can be re-ingested from scratch.
// Predictions and stats go first, then the fixtures themselves.
func (h *Handler) DeleteFixturesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFixturesByDate")
	defer span.End()

	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ingestionService.DeleteFixturesByDate(ctx, date)
	if err != nil {
		h.logger.ErrorContext(ctx, "delete fixtures failed", "date", fixture.DateKey(date), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.queryService.InvalidateDate(ctx, date)
	writeSuccess(ctx, w, http.StatusOK, result)
}
