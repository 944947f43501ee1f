package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaguePublicDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToPublicDTO(ctx, l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaguePerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaguePerformance")
	defer span.End()

	query := r.URL.Query()
	leagueName := strings.TrimSpace(query.Get("league"))

	season, err := parseSeasonParam(query.Get("season"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.leagueService.GetLeaguePerformance(ctx, leagueName, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get league performance failed", "league", leagueName, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamPerformanceDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, performanceToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
