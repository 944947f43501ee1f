package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/performance", handler.GetLeaguePerformance)
	mux.HandleFunc("GET /v1/players/stats", handler.GetPlayerStats)
	mux.HandleFunc("POST /v1/players/compare", handler.ComparePlayers)
	mux.HandleFunc("GET /v1/teams/stats", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/teams/squad-map", handler.GetSquadMap)
}
