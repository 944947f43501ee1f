package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kickdata/kickdata-api/external/apifootball"
	"github.com/kickdata/kickdata-api/external/geocode"
	"github.com/kickdata/kickdata-api/internal/config"
	"github.com/kickdata/kickdata-api/internal/domain/league"
	"github.com/kickdata/kickdata-api/internal/interfaces/httpapi"
	"github.com/kickdata/kickdata-api/internal/platform/logging"
	"github.com/kickdata/kickdata-api/internal/platform/resilience"
	"github.com/kickdata/kickdata-api/internal/usecase"
)

// NewHTTPServer wires provider clients, the league registry and the
// services behind a configured HTTP server. Nothing is started here.
func NewHTTPServer(cfg config.Config, logger *slog.Logger, zapLogger *logging.Logger) (*http.Server, error) {
	registry := league.NewRegistry(cfg.LeagueIDByName)

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		Key:        cfg.APIFootballKey,
		Host:       cfg.APIFootballHost,
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     zapLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})

	geocoder := geocode.NewClient(geocode.ClientConfig{
		BaseURL:   cfg.GeocodeBaseURL,
		UserAgent: cfg.GeocodeUserAgent,
		Timeout:   cfg.GeocodeTimeout,
		Retries:   cfg.GeocodeRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GeocodeCircuitEnabled,
			FailureThreshold: cfg.GeocodeCircuitFailureCount,
			OpenTimeout:      cfg.GeocodeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GeocodeCircuitHalfOpenMaxReq,
		},
	}, logger)

	leagueSvc := usecase.NewLeagueService(registry, provider, cfg.PerformanceWorkers, logger)
	playerSvc := usecase.NewPlayerService(registry, provider, logger)
	teamSvc := usecase.NewTeamService(registry, provider, logger)
	compareSvc := usecase.NewCompareService(playerSvc)
	mapSvc := usecase.NewMapService(registry, provider, geocoder, logger)

	handler := httpapi.NewHandler(leagueSvc, playerSvc, teamSvc, compareSvc, mapSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
