package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
	"github.com/riskibarqy/matchday-teams/internal/usecase"
)

type Handler struct {
	generationService   *usecase.GenerationService
	availabilityService *usecase.AvailabilityService
	jobDispatchRepo     jobscheduler.Repository
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	generationService *usecase.GenerationService,
	availabilityService *usecase.AvailabilityService,
	jobDispatchRepo jobscheduler.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		generationService:   generationService,
		availabilityService: availabilityService,
		jobDispatchRepo:     jobDispatchRepo,
		logger:              logger,
		validator:           validator.New(),
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

func matchDateFromPath(r *http.Request) (matchday.Date, error) {
	return matchday.ParseDate(strings.TrimSpace(r.PathValue("date")))
}
