package httpapi

import (
	"net/http"
	"strings"

	"github.com/kickdata/kickdata-api/internal/usecase"
)

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	query := r.URL.Query()
	name := strings.TrimSpace(query.Get("name"))
	leagueName := strings.TrimSpace(query.Get("league"))

	season, err := parseSeasonParam(query.Get("season"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.playerService.GetPlayerStats(ctx, name, season, leagueName)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "name", name, "season", season, "league", leagueName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToStatsDTO(ctx, record))
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	var req comparePlayersRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections := make([]usecase.CompareSelection, 0, len(req.Players))
	for _, item := range req.Players {
		selections = append(selections, usecase.CompareSelection{
			Name:   item.Name,
			League: item.League,
		})
	}

	comparison, err := h.compareService.Compare(ctx, selections, req.Season, req.Stats)
	if err != nil {
		h.logger.WarnContext(ctx, "compare players failed", "season", req.Season, "players", len(req.Players), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparisonToDTO(ctx, comparison))
}
