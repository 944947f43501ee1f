package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	query := r.URL.Query()
	name := strings.TrimSpace(query.Get("name"))
	country := strings.TrimSpace(query.Get("country"))
	leagueName := strings.TrimSpace(query.Get("league"))

	season, err := parseSeasonParam(query.Get("season"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.teamService.GetTeamStats(ctx, name, country, season, leagueName)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "name", name, "country", country, "season", season, "league", leagueName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToStatsDTO(ctx, record))
}

func (h *Handler) GetSquadMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquadMap")
	defer span.End()

	query := r.URL.Query()
	name := strings.TrimSpace(query.Get("name"))
	country := strings.TrimSpace(query.Get("country"))
	leagueName := strings.TrimSpace(query.Get("league"))

	season, err := parseSeasonParam(query.Get("season"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squadMap, err := h.mapService.GetSquadMap(ctx, name, country, season, leagueName)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad map failed", "name", name, "country", country, "season", season, "league", leagueName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadMapToDTO(ctx, squadMap))
}
