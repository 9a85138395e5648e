package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/matchday-teams/internal/usecase"
)

type submitAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

func (h *Handler) ListMatchDates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchDates")
	defer span.End()

	playerID, _ := playerIDFromContext(ctx)
	entries, err := h.availabilityService.Window(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match dates failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDateDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, matchDateToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitAvailability")
	defer span.End()

	playerID, ok := playerIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: player id is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitAvailabilityRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchDate := strings.TrimSpace(r.PathValue("date"))
	record, err := h.availabilityService.Submit(ctx, usecase.SubmitAvailabilityInput{
		PlayerID:  playerID,
		MatchDate: matchDate,
		Available: *req.Available,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit availability failed", "player_id", playerID, "match_date", matchDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityDTO{
		PlayerID:  record.PlayerID,
		MatchDate: record.MatchDate.String(),
		Available: record.Available,
		UpdatedAt: record.UpdatedAt,
	})
}
