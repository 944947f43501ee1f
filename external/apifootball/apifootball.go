package apifootball

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kickdata/kickdata-api/internal/usecase"
)

type pagingInfo struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type playersEnvelope struct {
	Errors   any           `json:"errors"`
	Results  int           `json:"results"`
	Paging   pagingInfo    `json:"paging"`
	Response []playerEntry `json:"response"`
}

type teamsEnvelope struct {
	Errors   any         `json:"errors"`
	Results  int         `json:"results"`
	Paging   pagingInfo  `json:"paging"`
	Response []teamEntry `json:"response"`
}

type teamStatsEnvelope struct {
	Errors   any              `json:"errors"`
	Results  int              `json:"results"`
	Response teamStatsPayload `json:"response"`
}

type playerEntry struct {
	Player     playerCard         `json:"player"`
	Statistics []playerStatistics `json:"statistics"`
}

type playerCard struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Age         int    `json:"age"`
	Nationality string `json:"nationality"`
	Photo       string `json:"photo"`
}

type teamCard struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
}

type teamEntry struct {
	Team teamCard `json:"team"`
}

// playerStatistics keeps every leaf a pointer so JSON null survives decoding
// and normalization can tell "sent zero" apart from "not sent".
type playerStatistics struct {
	Team  teamCard `json:"team"`
	Shots struct {
		Total *int `json:"total"`
		On    *int `json:"on"`
	} `json:"shots"`
	Goals struct {
		Total   *int `json:"total"`
		Assists *int `json:"assists"`
	} `json:"goals"`
	Passes struct {
		Key      *int `json:"key"`
		Accuracy *int `json:"accuracy"`
	} `json:"passes"`
	Tackles struct {
		Total         *int `json:"total"`
		Blocks        *int `json:"blocks"`
		Interceptions *int `json:"interceptions"`
	} `json:"tackles"`
	Duels struct {
		Won *int `json:"won"`
	} `json:"duels"`
	Dribbles struct {
		Attempts *int `json:"attempts"`
		Success  *int `json:"success"`
	} `json:"dribbles"`
	Fouls struct {
		Drawn     *int `json:"drawn"`
		Committed *int `json:"committed"`
	} `json:"fouls"`
}

type intTriple struct {
	Home  *int `json:"home"`
	Away  *int `json:"away"`
	Total *int `json:"total"`
}

type stringTriple struct {
	Home  *string `json:"home"`
	Away  *string `json:"away"`
	Total *string `json:"total"`
}

type goalsBlock struct {
	Total   intTriple    `json:"total"`
	Average stringTriple `json:"average"`
}

type teamStatsPayload struct {
	Team     teamCard `json:"team"`
	Form     *string  `json:"form"`
	Fixtures struct {
		Played intTriple `json:"played"`
		Wins   intTriple `json:"wins"`
		Draws  intTriple `json:"draws"`
		Loses  intTriple `json:"loses"`
	} `json:"fixtures"`
	Goals struct {
		For     goalsBlock `json:"for"`
		Against goalsBlock `json:"against"`
	} `json:"goals"`
	Biggest struct {
		Streak struct {
			Wins  *int `json:"wins"`
			Draws *int `json:"draws"`
			Loses *int `json:"loses"`
		} `json:"streak"`
		Wins struct {
			Home *string `json:"home"`
			Away *string `json:"away"`
		} `json:"wins"`
		Loses struct {
			Home *string `json:"home"`
			Away *string `json:"away"`
		} `json:"loses"`
	} `json:"biggest"`
	CleanSheet    intTriple `json:"clean_sheet"`
	FailedToScore intTriple `json:"failed_to_score"`
	Lineups       []struct {
		Formation string `json:"formation"`
		Played    int    `json:"played"`
	} `json:"lineups"`
}

func mapPlayerEntry(entry playerEntry) usecase.ProviderPlayer {
	out := usecase.ProviderPlayer{
		ID:          entry.Player.ID,
		Name:        strings.TrimSpace(entry.Player.Name),
		FirstName:   strings.TrimSpace(entry.Player.Firstname),
		LastName:    strings.TrimSpace(entry.Player.Lastname),
		Age:         entry.Player.Age,
		Nationality: strings.TrimSpace(entry.Player.Nationality),
		PhotoURL:    strings.TrimSpace(entry.Player.Photo),
	}
	if len(entry.Statistics) == 0 {
		return out
	}

	// The players endpoint is already filtered by season and league, so the
	// first statistics row is the one requested.
	stats := entry.Statistics[0]
	out.TeamID = stats.Team.ID
	out.TeamName = strings.TrimSpace(stats.Team.Name)
	out.TeamLogoURL = strings.TrimSpace(stats.Team.Logo)
	out.Stats = &usecase.ProviderPlayerStats{
		Goals:            stats.Goals.Total,
		Assists:          stats.Goals.Assists,
		ShotsTotal:       stats.Shots.Total,
		ShotsOn:          stats.Shots.On,
		DribbleAttempts:  stats.Dribbles.Attempts,
		DribbleSuccesses: stats.Dribbles.Success,
		KeyPasses:        stats.Passes.Key,
		PassAccuracy:     stats.Passes.Accuracy,
		DuelsWon:         stats.Duels.Won,
		TacklesTotal:     stats.Tackles.Total,
		Interceptions:    stats.Tackles.Interceptions,
		Blocks:           stats.Tackles.Blocks,
		FoulsDrawn:       stats.Fouls.Drawn,
		FoulsCommitted:   stats.Fouls.Committed,
	}
	return out
}

func mapTeamEntry(entry teamEntry) usecase.ProviderTeam {
	return usecase.ProviderTeam{
		ID:      entry.Team.ID,
		Name:    strings.TrimSpace(entry.Team.Name),
		Country: strings.TrimSpace(entry.Team.Country),
		LogoURL: strings.TrimSpace(entry.Team.Logo),
	}
}

func mapTeamStats(payload teamStatsPayload) usecase.ProviderTeamStats {
	out := usecase.ProviderTeamStats{
		TeamName:    strings.TrimSpace(payload.Team.Name),
		TeamLogoURL: strings.TrimSpace(payload.Team.Logo),
		Form:        payload.Form,

		Played: mapIntTriple(payload.Fixtures.Played),
		Wins:   mapIntTriple(payload.Fixtures.Wins),
		Draws:  mapIntTriple(payload.Fixtures.Draws),
		Losses: mapIntTriple(payload.Fixtures.Loses),

		GoalsFor:            mapIntTriple(payload.Goals.For.Total),
		GoalsAgainst:        mapIntTriple(payload.Goals.Against.Total),
		GoalsForAverage:     mapStringTriple(payload.Goals.For.Average),
		GoalsAgainstAverage: mapStringTriple(payload.Goals.Against.Average),

		StreakWins:   payload.Biggest.Streak.Wins,
		StreakDraws:  payload.Biggest.Streak.Draws,
		StreakLosses: payload.Biggest.Streak.Loses,

		BiggestWinHome:  payload.Biggest.Wins.Home,
		BiggestWinAway:  payload.Biggest.Wins.Away,
		BiggestLossHome: payload.Biggest.Loses.Home,
		BiggestLossAway: payload.Biggest.Loses.Away,

		CleanSheets:   mapIntTriple(payload.CleanSheet),
		FailedToScore: mapIntTriple(payload.FailedToScore),
	}

	for _, lineup := range payload.Lineups {
		formation := strings.TrimSpace(lineup.Formation)
		if formation == "" {
			continue
		}
		out.Lineups = append(out.Lineups, usecase.ProviderLineup{
			Formation: formation,
			Played:    lineup.Played,
		})
	}

	return out
}

func mapIntTriple(in intTriple) usecase.IntTriple {
	return usecase.IntTriple{Home: in.Home, Away: in.Away, Total: in.Total}
}

func mapStringTriple(in stringTriple) usecase.StringTriple {
	return usecase.StringTriple{Home: in.Home, Away: in.Away, Total: in.Total}
}

// envelopeError flattens the provider's errors field. On success the
// provider sends an empty array; on failure an object keyed by parameter
// name, occasionally an array of objects.
func envelopeError(errs any) error {
	messages := collectErrorMessages(errs)
	if len(messages) == 0 {
		return nil
	}
	sort.Strings(messages)
	return fmt.Errorf("provider reported errors: %s", strings.Join(messages, "; "))
}

func collectErrorMessages(errs any) []string {
	switch typed := errs.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make([]string, 0, len(typed))
		for key, value := range typed {
			out = append(out, fmt.Sprintf("%s: %v", key, value))
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, collectErrorMessages(item)...)
		}
		return out
	case string:
		if strings.TrimSpace(typed) == "" {
			return nil
		}
		return []string{typed}
	default:
		return []string{fmt.Sprintf("%v", typed)}
	}
}
