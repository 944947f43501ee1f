package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kickdata/kickdata-api/internal/domain/league"
	"github.com/kickdata/kickdata-api/internal/domain/team"
)

// TeamService looks up clubs and flattens their season statistics.
type TeamService struct {
	registry *league.Registry
	provider StatsProvider
	logger   *slog.Logger
}

func NewTeamService(registry *league.Registry, provider StatsProvider, logger *slog.Logger) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		registry: registry,
		provider: provider,
		logger:   logger,
	}
}

// GetTeamStats resolves a club by name and country, then fetches and
// normalizes its season aggregates. The league name is validated before
// any provider call.
func (s *TeamService) GetTeamStats(ctx context.Context, clubName, country string, season int, leagueName string) (team.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamStats")
	defer span.End()

	if strings.TrimSpace(clubName) == "" {
		return team.Record{}, fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}
	if season <= 0 {
		return team.Record{}, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	leagueID, ok := s.registry.ID(leagueName)
	if !ok {
		return team.Record{}, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, leagueName)
	}

	found, err := s.provider.FindTeam(ctx, clubName, country)
	if err != nil {
		return team.Record{}, err
	}

	stats, err := s.provider.TeamStatistics(ctx, found.ID, season, leagueID)
	if err != nil {
		return team.Record{}, err
	}

	record, err := normalizeTeam(found, stats)
	if err != nil {
		s.logger.WarnContext(ctx, "team payload normalization failed",
			"team_id", found.ID,
			"league_id", leagueID,
			"season", season,
			"error", err,
		)
		return team.Record{}, err
	}
	return record, nil
}

// normalizeTeam flattens the provider's nested season payload. Unlike
// player records every leaf is required: a club that played a season has
// all of these populated, so a null marks a broken payload. Field names in
// errors follow the provider's JSON paths.
func normalizeTeam(found ProviderTeam, stats ProviderTeamStats) (team.Record, error) {
	record := team.Record{
		Name:    stats.TeamName,
		LogoURL: stats.TeamLogoURL,
	}
	if record.Name == "" {
		record.Name = found.Name
	}
	if record.LogoURL == "" {
		record.LogoURL = found.LogoURL
	}

	if stats.Form == nil {
		return team.Record{}, missingTeamField("form")
	}
	record.Form = *stats.Form

	intFields := []struct {
		value *int
		name  string
		dst   *int
	}{
		{stats.Played.Total, "fixtures.played.total", &record.TotalGames},
		{stats.Played.Home, "fixtures.played.home", &record.HomeGames},
		{stats.Played.Away, "fixtures.played.away", &record.AwayGames},
		{stats.Wins.Total, "fixtures.wins.total", &record.TotalWins},
		{stats.Wins.Home, "fixtures.wins.home", &record.HomeWins},
		{stats.Wins.Away, "fixtures.wins.away", &record.AwayWins},
		{stats.Draws.Total, "fixtures.draws.total", &record.TotalDraws},
		{stats.Draws.Home, "fixtures.draws.home", &record.HomeDraws},
		{stats.Draws.Away, "fixtures.draws.away", &record.AwayDraws},
		{stats.Losses.Total, "fixtures.loses.total", &record.TotalLosses},
		{stats.Losses.Home, "fixtures.loses.home", &record.HomeLosses},
		{stats.Losses.Away, "fixtures.loses.away", &record.AwayLosses},
		{stats.GoalsFor.Total, "goals.for.total.total", &record.GoalsScored},
		{stats.GoalsFor.Home, "goals.for.total.home", &record.HomeGoalsScored},
		{stats.GoalsFor.Away, "goals.for.total.away", &record.AwayGoalsScored},
		{stats.GoalsAgainst.Total, "goals.against.total.total", &record.GoalsConceded},
		{stats.GoalsAgainst.Home, "goals.against.total.home", &record.HomeGoalsConceded},
		{stats.GoalsAgainst.Away, "goals.against.total.away", &record.AwayGoalsConceded},
		{stats.StreakWins, "biggest.streak.wins", &record.WinStreak},
		{stats.StreakDraws, "biggest.streak.draws", &record.DrawStreak},
		{stats.StreakLosses, "biggest.streak.loses", &record.LossStreak},
		{stats.CleanSheets.Total, "clean_sheet.total", &record.TotalCleanSheets},
		{stats.CleanSheets.Home, "clean_sheet.home", &record.HomeCleanSheets},
		{stats.CleanSheets.Away, "clean_sheet.away", &record.AwayCleanSheets},
		{stats.FailedToScore.Total, "failed_to_score.total", &record.TotalFailedToScore},
		{stats.FailedToScore.Home, "failed_to_score.home", &record.HomeFailedToScore},
		{stats.FailedToScore.Away, "failed_to_score.away", &record.AwayFailedToScore},
	}
	for _, field := range intFields {
		if field.value == nil {
			return team.Record{}, missingTeamField(field.name)
		}
		*field.dst = *field.value
	}

	stringFields := []struct {
		value *string
		name  string
		dst   *string
	}{
		{stats.BiggestWinHome, "biggest.wins.home", &record.BiggestHomeWin},
		{stats.BiggestWinAway, "biggest.wins.away", &record.BiggestAwayWin},
		{stats.BiggestLossHome, "biggest.loses.home", &record.BiggestHomeLoss},
		{stats.BiggestLossAway, "biggest.loses.away", &record.BiggestAwayLoss},
	}
	for _, field := range stringFields {
		if field.value == nil {
			return team.Record{}, missingTeamField(field.name)
		}
		*field.dst = *field.value
	}

	// Averages arrive as decimal strings, e.g. "2.3".
	averages := []struct {
		value *string
		name  string
		dst   *float64
	}{
		{stats.GoalsForAverage.Total, "goals.for.average.total", &record.AvgGoalsScored},
		{stats.GoalsForAverage.Home, "goals.for.average.home", &record.AvgHomeGoalsScored},
		{stats.GoalsForAverage.Away, "goals.for.average.away", &record.AvgAwayGoalsScored},
		{stats.GoalsAgainstAverage.Total, "goals.against.average.total", &record.AvgGoalsConceded},
		{stats.GoalsAgainstAverage.Home, "goals.against.average.home", &record.AvgHomeGoalsConceded},
		{stats.GoalsAgainstAverage.Away, "goals.against.average.away", &record.AvgAwayGoalsConceded},
	}
	for _, field := range averages {
		if field.value == nil {
			return team.Record{}, missingTeamField(field.name)
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(*field.value), 64)
		if err != nil {
			return team.Record{}, fmt.Errorf("%w: %s is not a decimal: %q", ErrMissingField, field.name, *field.value)
		}
		*field.dst = parsed
	}

	record.Lineups = make(map[string]int, len(stats.Lineups))
	for _, lineup := range stats.Lineups {
		record.Lineups[lineup.Formation] = lineup.Played
	}

	return record, nil
}

func missingTeamField(name string) error {
	return fmt.Errorf("%w: %s is null in team statistics payload", ErrMissingField, name)
}
