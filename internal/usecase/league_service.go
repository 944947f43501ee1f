package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/kickdata/kickdata-api/internal/domain/league"
	"github.com/kickdata/kickdata-api/internal/domain/team"
)

const defaultPerformanceWorkers = 8

// LeagueService exposes the competition registry and aggregates season
// performance across a whole league.
type LeagueService struct {
	registry   *league.Registry
	provider   StatsProvider
	maxWorkers int
	logger     *slog.Logger
}

func NewLeagueService(registry *league.Registry, provider StatsProvider, maxWorkers int, logger *slog.Logger) *LeagueService {
	if maxWorkers < 1 {
		maxWorkers = defaultPerformanceWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LeagueService{
		registry:   registry,
		provider:   provider,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// ListLeagues returns the registered competitions.
func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	return s.registry.Leagues(), nil
}

// TeamPerformance is one league table row ranked by performance score.
type TeamPerformance struct {
	TeamID   int
	TeamName string
	Record   team.Record
	Score    float64
	Band     team.Band
}

// GetLeaguePerformance fetches season statistics for every club in the
// league over a bounded worker pool and ranks them by performance score.
// Clubs whose statistics fail to fetch or normalize are logged and
// skipped; a partial table is better than none when the provider has gaps.
func (s *LeagueService) GetLeaguePerformance(ctx context.Context, leagueName string, season int) ([]TeamPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeaguePerformance")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	leagueID, ok := s.registry.ID(leagueName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, leagueName)
	}

	teams, err := s.provider.ListTeamsByLeague(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: league %q has no teams for season %d", ErrNotFound, leagueName, season)
	}

	workerCount := s.maxWorkers
	if len(teams) < workerCount {
		workerCount = len(teams)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan TeamPerformance, len(teams))
	var workers sync.WaitGroup
	for _, item := range teams {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			stats, err := s.provider.TeamStatistics(ctx, item.ID, season, leagueID)
			if err != nil {
				s.logger.WarnContext(ctx, "skip team in league performance",
					"team_id", item.ID,
					"team_name", item.Name,
					"league_id", leagueID,
					"error", err,
				)
				return
			}
			record, err := normalizeTeam(item, stats)
			if err != nil {
				s.logger.WarnContext(ctx, "skip team with incomplete statistics",
					"team_id", item.ID,
					"team_name", item.Name,
					"league_id", leagueID,
					"error", err,
				)
				return
			}

			score := record.Performance()
			results <- TeamPerformance{
				TeamID:   item.ID,
				TeamName: record.Name,
				Record:   record,
				Score:    score,
				Band:     team.BandFor(score),
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit team to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]TeamPerformance, 0, len(teams))
	for row := range results {
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no team in league %q yielded usable statistics", ErrNotFound, leagueName)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out, nil
}
