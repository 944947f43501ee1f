package httpapi

import (
	"context"

	"github.com/kickdata/kickdata-api/internal/domain/league"
	"github.com/kickdata/kickdata-api/internal/domain/player"
	"github.com/kickdata/kickdata-api/internal/domain/team"
	"github.com/kickdata/kickdata-api/internal/usecase"
)

type leaguePublicDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func leagueToPublicDTO(ctx context.Context, item league.League) leaguePublicDTO {
	_ = ctx
	return leaguePublicDTO{ID: item.ID, Name: item.Name}
}

type statValueDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type playerStatsDTO struct {
	Name        string         `json:"name"`
	PhotoURL    string         `json:"photoUrl"`
	TeamID      int            `json:"teamId"`
	TeamLogoURL string         `json:"teamLogoUrl"`
	Nationality string         `json:"nationality"`
	Age         int            `json:"age"`
	Stats       []statValueDTO `json:"stats"`
}

func playerToStatsDTO(ctx context.Context, record player.Record) playerStatsDTO {
	_ = ctx
	names := player.StatNames()
	stats := make([]statValueDTO, 0, len(names))
	for _, name := range names {
		value, _ := record.StatValue(name)
		stats = append(stats, statValueDTO{Name: name, Value: value})
	}

	return playerStatsDTO{
		Name:        record.Name,
		PhotoURL:    record.PhotoURL,
		TeamID:      record.TeamID,
		TeamLogoURL: record.TeamLogoURL,
		Nationality: record.Nationality,
		Age:         record.Age,
		Stats:       stats,
	}
}

type teamStatsDTO struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`

	TotalGames int `json:"totalGames"`
	HomeGames  int `json:"homeGames"`
	AwayGames  int `json:"awayGames"`

	TotalWins   int `json:"totalWins"`
	HomeWins    int `json:"homeWins"`
	AwayWins    int `json:"awayWins"`
	TotalDraws  int `json:"totalDraws"`
	HomeDraws   int `json:"homeDraws"`
	AwayDraws   int `json:"awayDraws"`
	TotalLosses int `json:"totalLosses"`
	HomeLosses  int `json:"homeLosses"`
	AwayLosses  int `json:"awayLosses"`

	GoalsScored       int `json:"goalsScored"`
	HomeGoalsScored   int `json:"homeGoalsScored"`
	AwayGoalsScored   int `json:"awayGoalsScored"`
	GoalsConceded     int `json:"goalsConceded"`
	HomeGoalsConceded int `json:"homeGoalsConceded"`
	AwayGoalsConceded int `json:"awayGoalsConceded"`

	AvgGoalsScored       float64 `json:"avgGoalsScored"`
	AvgHomeGoalsScored   float64 `json:"avgHomeGoalsScored"`
	AvgAwayGoalsScored   float64 `json:"avgAwayGoalsScored"`
	AvgGoalsConceded     float64 `json:"avgGoalsConceded"`
	AvgHomeGoalsConceded float64 `json:"avgHomeGoalsConceded"`
	AvgAwayGoalsConceded float64 `json:"avgAwayGoalsConceded"`

	Form string `json:"form"`

	WinStreak  int `json:"winStreak"`
	DrawStreak int `json:"drawStreak"`
	LossStreak int `json:"lossStreak"`

	BiggestHomeWin  string `json:"biggestHomeWin"`
	BiggestAwayWin  string `json:"biggestAwayWin"`
	BiggestHomeLoss string `json:"biggestHomeLoss"`
	BiggestAwayLoss string `json:"biggestAwayLoss"`

	TotalCleanSheets int `json:"totalCleanSheets"`
	HomeCleanSheets  int `json:"homeCleanSheets"`
	AwayCleanSheets  int `json:"awayCleanSheets"`

	TotalFailedToScore int `json:"totalFailedToScore"`
	HomeFailedToScore  int `json:"homeFailedToScore"`
	AwayFailedToScore  int `json:"awayFailedToScore"`

	Lineups map[string]int `json:"lineups"`

	Performance float64 `json:"performance"`
	Band        string  `json:"band"`
}

func teamToStatsDTO(ctx context.Context, record team.Record) teamStatsDTO {
	_ = ctx
	score := record.Performance()

	return teamStatsDTO{
		Name:    record.Name,
		LogoURL: record.LogoURL,

		TotalGames: record.TotalGames,
		HomeGames:  record.HomeGames,
		AwayGames:  record.AwayGames,

		TotalWins:   record.TotalWins,
		HomeWins:    record.HomeWins,
		AwayWins:    record.AwayWins,
		TotalDraws:  record.TotalDraws,
		HomeDraws:   record.HomeDraws,
		AwayDraws:   record.AwayDraws,
		TotalLosses: record.TotalLosses,
		HomeLosses:  record.HomeLosses,
		AwayLosses:  record.AwayLosses,

		GoalsScored:       record.GoalsScored,
		HomeGoalsScored:   record.HomeGoalsScored,
		AwayGoalsScored:   record.AwayGoalsScored,
		GoalsConceded:     record.GoalsConceded,
		HomeGoalsConceded: record.HomeGoalsConceded,
		AwayGoalsConceded: record.AwayGoalsConceded,

		AvgGoalsScored:       record.AvgGoalsScored,
		AvgHomeGoalsScored:   record.AvgHomeGoalsScored,
		AvgAwayGoalsScored:   record.AvgAwayGoalsScored,
		AvgGoalsConceded:     record.AvgGoalsConceded,
		AvgHomeGoalsConceded: record.AvgHomeGoalsConceded,
		AvgAwayGoalsConceded: record.AvgAwayGoalsConceded,

		Form: record.Form,

		WinStreak:  record.WinStreak,
		DrawStreak: record.DrawStreak,
		LossStreak: record.LossStreak,

		BiggestHomeWin:  record.BiggestHomeWin,
		BiggestAwayWin:  record.BiggestAwayWin,
		BiggestHomeLoss: record.BiggestHomeLoss,
		BiggestAwayLoss: record.BiggestAwayLoss,

		TotalCleanSheets: record.TotalCleanSheets,
		HomeCleanSheets:  record.HomeCleanSheets,
		AwayCleanSheets:  record.AwayCleanSheets,

		TotalFailedToScore: record.TotalFailedToScore,
		HomeFailedToScore:  record.HomeFailedToScore,
		AwayFailedToScore:  record.AwayFailedToScore,

		Lineups: record.Lineups,

		Performance: score,
		Band:        string(team.BandFor(score)),
	}
}

type teamPerformanceDTO struct {
	TeamID      int     `json:"teamId"`
	TeamName    string  `json:"teamName"`
	Performance float64 `json:"performance"`
	Band        string  `json:"band"`
}

func performanceToDTO(ctx context.Context, row usecase.TeamPerformance) teamPerformanceDTO {
	_ = ctx
	return teamPerformanceDTO{
		TeamID:      row.TeamID,
		TeamName:    row.TeamName,
		Performance: row.Score,
		Band:        string(row.Band),
	}
}

type compareSelectionDTO struct {
	Name   string `json:"name" validate:"required"`
	League string `json:"league" validate:"required"`
}

type comparePlayersRequest struct {
	Season  int                   `json:"season" validate:"required,gt=0"`
	Players []compareSelectionDTO `json:"players" validate:"required,min=1,max=3,dive"`
	Stats   []string              `json:"stats" validate:"omitempty,dive,required"`
}

type comparedPlayerDTO struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
	Values   []int  `json:"values"`
}

type comparisonDTO struct {
	Labels  []string            `json:"labels"`
	Players []comparedPlayerDTO `json:"players"`
}

func comparisonToDTO(ctx context.Context, comparison usecase.Comparison) comparisonDTO {
	_ = ctx
	players := make([]comparedPlayerDTO, 0, len(comparison.Players))
	for _, item := range comparison.Players {
		players = append(players, comparedPlayerDTO{
			Name:     item.Name,
			PhotoURL: item.PhotoURL,
			Values:   item.Values,
		})
	}
	return comparisonDTO{Labels: comparison.Labels, Players: players}
}

type squadMapPlayerDTO struct {
	Name        string   `json:"name"`
	PhotoURL    string   `json:"photoUrl"`
	Nationality string   `json:"nationality"`
	Age         int      `json:"age"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type squadMapDTO struct {
	TeamName string              `json:"teamName"`
	LogoURL  string              `json:"logoUrl"`
	Players  []squadMapPlayerDTO `json:"players"`
}

func squadMapToDTO(ctx context.Context, squadMap usecase.SquadMap) squadMapDTO {
	_ = ctx
	players := make([]squadMapPlayerDTO, 0, len(squadMap.Players))
	for _, pin := range squadMap.Players {
		players = append(players, squadMapPlayerDTO{
			Name:        pin.Name,
			PhotoURL:    pin.PhotoURL,
			Nationality: pin.Nationality,
			Age:         pin.Age,
			Latitude:    pin.Latitude,
			Longitude:   pin.Longitude,
		})
	}
	return squadMapDTO{
		TeamName: squadMap.TeamName,
		LogoURL:  squadMap.LogoURL,
		Players:  players,
	}
}
