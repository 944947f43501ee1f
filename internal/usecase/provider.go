package usecase

import "context"

// ProviderPlayer is a player record as returned by the statistics provider.
// Stats is nil when the provider returned no statistics entries for the
// player in the requested season and league.
type ProviderPlayer struct {
	ID          int
	Name        string
	FirstName   string
	LastName    string
	Age         int
	Nationality string
	PhotoURL    string
	TeamID      int
	TeamName    string
	TeamLogoURL string
	Stats       *ProviderPlayerStats
}

// DisplayName returns the name used for fuzzy matching: the provider's
// display name when present, otherwise first and last name joined.
func (p ProviderPlayer) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// ProviderPlayerStats mirrors the nullable statistics leaves of the
// provider payload. Nil means the provider sent JSON null or omitted the
// key; normalization decides per field whether that defaults to zero or
// fails the request.
type ProviderPlayerStats struct {
	Goals            *int
	Assists          *int
	ShotsTotal       *int
	ShotsOn          *int
	DribbleAttempts  *int
	DribbleSuccesses *int
	KeyPasses        *int
	PassAccuracy     *int
	DuelsWon         *int
	TacklesTotal     *int
	Interceptions    *int
	Blocks           *int
	FoulsDrawn       *int
	FoulsCommitted   *int
}

// ProviderTeam identifies a club in the provider's catalogue.
type ProviderTeam struct {
	ID      int
	Name    string
	Country string
	LogoURL string
}

// IntTriple is a home/away/total leaf from the provider payload.
type IntTriple struct {
	Home  *int
	Away  *int
	Total *int
}

// StringTriple is a home/away/total leaf whose values the provider encodes
// as strings, such as per-game averages.
type StringTriple struct {
	Home  *string
	Away  *string
	Total *string
}

// ProviderLineup is one formation usage row; order follows the payload.
type ProviderLineup struct {
	Formation string
	Played    int
}

// ProviderTeamStats mirrors the provider's season statistics payload for
// one club. Every leaf is a pointer: team normalization treats any nil as a
// missing required field.
type ProviderTeamStats struct {
	TeamName    string
	TeamLogoURL string

	Form *string

	Played IntTriple
	Wins   IntTriple
	Draws  IntTriple
	Losses IntTriple

	GoalsFor            IntTriple
	GoalsAgainst        IntTriple
	GoalsForAverage     StringTriple
	GoalsAgainstAverage StringTriple

	StreakWins   *int
	StreakDraws  *int
	StreakLosses *int

	BiggestWinHome  *string
	BiggestWinAway  *string
	BiggestLossHome *string
	BiggestLossAway *string

	CleanSheets   IntTriple
	FailedToScore IntTriple

	Lineups []ProviderLineup
}

// StatsProvider is the upstream football statistics API surface the
// services depend on.
type StatsProvider interface {
	SearchPlayers(ctx context.Context, search string, season, leagueID int) ([]ProviderPlayer, error)
	ListPlayersByTeam(ctx context.Context, teamID, season, leagueID int) ([]ProviderPlayer, error)
	FindTeam(ctx context.Context, name, country string) (ProviderTeam, error)
	ListTeamsByLeague(ctx context.Context, leagueID, season int) ([]ProviderTeam, error)
	TeamStatistics(ctx context.Context, teamID, season, leagueID int) (ProviderTeamStats, error)
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (lat, lon float64, err error)
}
