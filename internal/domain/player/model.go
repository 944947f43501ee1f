package player

// Stat display names, in the order charts render them. The set is closed:
// a normalized record always carries exactly these fourteen values.
const (
	StatGoals            = "Goals"
	StatAssists          = "Assists"
	StatTotalShots       = "Total Shots"
	StatShotsOnTarget    = "Shots on Target"
	StatDribbleAttempts  = "Dribble Attempts"
	StatDribbleSuccesses = "Dribble Successes"
	StatKeyPasses        = "Key Passes"
	StatPassSuccessRate  = "Pass Success Rate"
	StatDuelsWon         = "Duels Won"
	StatTotalTackles     = "Total Tackles"
	StatInterceptions    = "Interceptions"
	StatBlocks           = "Blocks"
	StatFoulsDrawn       = "Fouls Drawn"
	StatFoulsCommitted   = "Fouls Committed"
)

var statNames = []string{
	StatGoals,
	StatAssists,
	StatTotalShots,
	StatShotsOnTarget,
	StatDribbleAttempts,
	StatDribbleSuccesses,
	StatKeyPasses,
	StatPassSuccessRate,
	StatDuelsWon,
	StatTotalTackles,
	StatInterceptions,
	StatBlocks,
	StatFoulsDrawn,
	StatFoulsCommitted,
}

// StatNames returns the fixed stat ordering. Callers get a fresh slice.
func StatNames() []string {
	return append([]string(nil), statNames...)
}

// IsStatName reports whether name is one of the closed stat set.
func IsStatName(name string) bool {
	for _, candidate := range statNames {
		if candidate == name {
			return true
		}
	}
	return false
}

// Record is a season stat line for one player, flattened from the
// provider's nested payload.
type Record struct {
	Name        string
	PhotoURL    string
	TeamID      int
	TeamLogoURL string
	Nationality string
	Age         int

	Goals            int
	Assists          int
	TotalShots       int
	ShotsOnTarget    int
	DribbleAttempts  int
	DribbleSuccesses int
	KeyPasses        int
	PassSuccessRate  int
	DuelsWon         int
	TotalTackles     int
	Interceptions    int
	Blocks           int
	FoulsDrawn       int
	FoulsCommitted   int
}

// StatValue returns the value for a stat display name. The second return is
// false for names outside the closed set.
func (r Record) StatValue(name string) (int, bool) {
	switch name {
	case StatGoals:
		return r.Goals, true
	case StatAssists:
		return r.Assists, true
	case StatTotalShots:
		return r.TotalShots, true
	case StatShotsOnTarget:
		return r.ShotsOnTarget, true
	case StatDribbleAttempts:
		return r.DribbleAttempts, true
	case StatDribbleSuccesses:
		return r.DribbleSuccesses, true
	case StatKeyPasses:
		return r.KeyPasses, true
	case StatPassSuccessRate:
		return r.PassSuccessRate, true
	case StatDuelsWon:
		return r.DuelsWon, true
	case StatTotalTackles:
		return r.TotalTackles, true
	case StatInterceptions:
		return r.Interceptions, true
	case StatBlocks:
		return r.Blocks, true
	case StatFoulsDrawn:
		return r.FoulsDrawn, true
	case StatFoulsCommitted:
		return r.FoulsCommitted, true
	default:
		return 0, false
	}
}

// Stats returns the record's values keyed by display name, every key present.
func (r Record) Stats() map[string]int {
	out := make(map[string]int, len(statNames))
	for _, name := range statNames {
		value, _ := r.StatValue(name)
		out[name] = value
	}
	return out
}
