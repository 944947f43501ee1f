package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kickdata/kickdata-api/internal/domain/league"
	"github.com/kickdata/kickdata-api/internal/domain/player"
)

// PlayerService resolves free-text player names against the statistics
// provider and normalizes the returned season stat lines.
type PlayerService struct {
	registry *league.Registry
	provider StatsProvider
	logger   *slog.Logger
}

func NewPlayerService(registry *league.Registry, provider StatsProvider, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerService{
		registry: registry,
		provider: provider,
		logger:   logger,
	}
}

// GetPlayerStats fetches and flattens one player's season statistics.
// The league name is validated against the registry before any provider
// call; an unknown league never reaches the network.
func (s *PlayerService) GetPlayerStats(ctx context.Context, name string, season int, leagueName string) (player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerStats")
	defer span.End()

	if strings.TrimSpace(name) == "" {
		return player.Record{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if season <= 0 {
		return player.Record{}, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	leagueID, ok := s.registry.ID(leagueName)
	if !ok {
		return player.Record{}, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, leagueName)
	}

	resolved, err := s.resolveByName(ctx, name, season, leagueID)
	if err != nil {
		return player.Record{}, err
	}

	record, err := normalizePlayer(resolved)
	if err != nil {
		s.logger.WarnContext(ctx, "player payload normalization failed",
			"player_id", resolved.ID,
			"league_id", leagueID,
			"season", season,
			"error", err,
		)
		return player.Record{}, err
	}
	return record, nil
}

// resolveByName runs the full-name pass and, for multi-token names that
// come up empty, a second pass on the bare surname. Both passes include
// the full progressive trimming loop.
func (s *PlayerService) resolveByName(ctx context.Context, name string, season, leagueID int) (ProviderPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.resolveByName")
	defer span.End()

	fetch := func(ctx context.Context, search string) ([]ProviderPlayer, error) {
		return s.provider.SearchPlayers(ctx, search, season, leagueID)
	}

	primary, fallback := splitQueryName(name)
	resolved, err := resolvePlayer(ctx, primary, fetch)
	if err == nil {
		return resolved, nil
	}
	if fallback == "" || !errors.Is(err, ErrNotFound) {
		return ProviderPlayer{}, err
	}

	s.logger.DebugContext(ctx, "full name exhausted, retrying with surname",
		"query", name,
		"surname", fallback,
	)
	return resolvePlayer(ctx, fallback, fetch)
}

// Required stat leaves fail normalization when the provider sends null.
// The remaining leaves default to zero: the provider omits them routinely
// for players with sparse involvement, and zero is their true value then.
func normalizePlayer(p ProviderPlayer) (player.Record, error) {
	if p.Stats == nil {
		return player.Record{}, fmt.Errorf("%w: player %q has no statistics entries", ErrMissingField, p.DisplayName())
	}
	stats := p.Stats

	record := player.Record{
		Name:        p.DisplayName(),
		PhotoURL:    p.PhotoURL,
		TeamID:      p.TeamID,
		TeamLogoURL: p.TeamLogoURL,
		Nationality: p.Nationality,
		Age:         p.Age,

		Assists:         intOrZero(stats.Assists),
		PassSuccessRate: intOrZero(stats.PassAccuracy),
		DuelsWon:        intOrZero(stats.DuelsWon),
		TotalTackles:    intOrZero(stats.TacklesTotal),
		Interceptions:   intOrZero(stats.Interceptions),
		Blocks:          intOrZero(stats.Blocks),
	}

	required := []struct {
		value *int
		name  string
		dst   *int
	}{
		{stats.Goals, player.StatGoals, &record.Goals},
		{stats.ShotsTotal, player.StatTotalShots, &record.TotalShots},
		{stats.ShotsOn, player.StatShotsOnTarget, &record.ShotsOnTarget},
		{stats.DribbleAttempts, player.StatDribbleAttempts, &record.DribbleAttempts},
		{stats.DribbleSuccesses, player.StatDribbleSuccesses, &record.DribbleSuccesses},
		{stats.KeyPasses, player.StatKeyPasses, &record.KeyPasses},
		{stats.FoulsDrawn, player.StatFoulsDrawn, &record.FoulsDrawn},
		{stats.FoulsCommitted, player.StatFoulsCommitted, &record.FoulsCommitted},
	}
	for _, field := range required {
		if field.value == nil {
			return player.Record{}, fmt.Errorf("%w: %s is null for player %q", ErrMissingField, field.name, p.DisplayName())
		}
		*field.dst = *field.value
	}

	return record, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
