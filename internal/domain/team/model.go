package team

// Record is a season statistics line for one club, flattened from the
// provider's nested payload. Every field is required during normalization;
// unlike player records there is no defaulting.
type Record struct {
	Name    string
	LogoURL string

	TotalGames int
	HomeGames  int
	AwayGames  int

	TotalWins   int
	HomeWins    int
	AwayWins    int
	TotalDraws  int
	HomeDraws   int
	AwayDraws   int
	TotalLosses int
	HomeLosses  int
	AwayLosses  int

	GoalsScored       int
	HomeGoalsScored   int
	AwayGoalsScored   int
	GoalsConceded     int
	HomeGoalsConceded int
	AwayGoalsConceded int

	AvgGoalsScored       float64
	AvgHomeGoalsScored   float64
	AvgAwayGoalsScored   float64
	AvgGoalsConceded     float64
	AvgHomeGoalsConceded float64
	AvgAwayGoalsConceded float64

	// Form is the season result sequence, e.g. "WWDLW".
	Form string

	WinStreak  int
	DrawStreak int
	LossStreak int

	BiggestHomeWin  string
	BiggestAwayWin  string
	BiggestHomeLoss string
	BiggestAwayLoss string

	TotalCleanSheets int
	HomeCleanSheets  int
	AwayCleanSheets  int

	TotalFailedToScore int
	HomeFailedToScore  int
	AwayFailedToScore  int

	// Lineups maps formation label to matches played with it. Duplicate
	// formation labels from the provider overwrite earlier entries.
	Lineups map[string]int
}

// Performance condenses a season into one comparable number:
// (wins - losses + goals scored) / games. A team with no games scores the
// raw numerator against a divisor of one instead of dividing by zero.
func (r Record) Performance() float64 {
	games := r.TotalGames
	if games < 1 {
		games = 1
	}
	return float64(r.TotalWins-r.TotalLosses+r.GoalsScored) / float64(games)
}

// Band is the traffic-light classification of a performance score.
type Band string

const (
	BandRed    Band = "red"
	BandYellow Band = "yellow"
	BandGreen  Band = "green"
)

// BandFor classifies a performance score. Boundaries sit at 1 and 2.5,
// both inclusive on the lower band.
func BandFor(score float64) Band {
	switch {
	case score <= 1:
		return BandRed
	case score <= 2.5:
		return BandYellow
	default:
		return BandGreen
	}
}
