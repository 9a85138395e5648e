package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
	"github.com/riskibarqy/matchday-teams/internal/usecase"
)

// GetPublishedTeams returns an empty list until the date is published.
func (h *Handler) GetPublishedTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPublishedTeams")
	defer span.End()

	date, err := matchDateFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.generationService.GetPublished(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "get published teams failed", "match_date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) PreviewTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewTeams")
	defer span.End()

	date, err := matchDateFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.generationService.GetAllForMatch(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "preview teams failed", "match_date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) GenerateTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateTeams")
	defer span.End()

	date, err := matchDateFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.generationService.Trigger(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "manual generation failed",
			"match_date", date.String(),
			"error_code", usecase.CodeOf(err),
			"error", err,
		)
		if out.ConfigurationDescription == "" {
			writeError(ctx, w, err)
			return
		}
		writeErrorWithData(ctx, w, err, runResultToDTO(out))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runResultToDTO(out))
}

func (h *Handler) PublishTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishTeams")
	defer span.End()

	date, err := matchDateFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.generationService.Publish(ctx, date); err != nil {
		h.logger.WarnContext(ctx, "manual publish failed", "match_date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	teams, err := h.generationService.GetPublished(ctx, date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, publishDTO{
		MatchDate: date.String(),
		Published: len(teams) > 0,
		Teams:     teamsToDTO(teams),
	})
}

func (h *Handler) ListDispatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDispatches")
	defer span.End()

	date, err := matchDateFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.jobDispatchRepo.ListByMatchDate(ctx, date.String())
	if err != nil {
		h.logger.WarnContext(ctx, "list dispatches failed", "match_date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]dispatchDTO, 0, len(events))
	for _, event := range events {
		items = append(items, dispatchToDTO(event))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func teamsToDTO(teams []teamsheet.Team) []teamDTO {
	items := make([]teamDTO, 0, len(teams))
	for _, team := range teams {
		items = append(items, teamToDTO(team))
	}
	return items
}
