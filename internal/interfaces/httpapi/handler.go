package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/codrut-p/matchday/internal/usecase"
)

type Handler struct {
	queryService      *usecase.FixtureQueryService
	ingestionService  *usecase.IngestionService
	enrichmentService *usecase.EnrichmentService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	queryService *usecase.FixtureQueryService,
	ingestionService *usecase.IngestionService,
	enrichmentService *usecase.EnrichmentService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		queryService:      queryService,
		ingestionService:  ingestionService,
		enrichmentService: enrichmentService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeRequest(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// parseDateParam accepts the wire format the provider uses for date
// filters, e.g. 2026-08-28, and anchors it at midnight UTC.
func parseDateParam(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", usecase.ErrInvalidInput)
	}
	date, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", usecase.ErrInvalidInput, value)
	}
	return date, nil
}

func parseFixtureIDPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("fixtureID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid fixture id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

func formatKickoff(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
