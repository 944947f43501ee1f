package usecase

import (
	"context"
	"fmt"

	"github.com/kickdata/kickdata-api/internal/domain/player"
)

// MaxComparePlayers bounds one comparison request.
const MaxComparePlayers = 3

// CompareService builds side-by-side stat series for radar rendering.
type CompareService struct {
	players *PlayerService
}

func NewCompareService(players *PlayerService) *CompareService {
	return &CompareService{players: players}
}

// CompareSelection names one player and the league to resolve them in.
type CompareSelection struct {
	Name   string
	League string
}

// ComparedPlayer is one player's series aligned with Comparison.Labels.
type ComparedPlayer struct {
	Name     string
	PhotoURL string
	Values   []int
}

// Comparison holds shared stat labels and one value series per player.
type Comparison struct {
	Labels  []string
	Players []ComparedPlayer
}

// Compare resolves and normalizes up to three players and projects their
// records onto a shared label axis. statNames narrows the axis to a subset
// of the closed stat set; empty means all fourteen. Resolution failures are
// not skipped: comparing against a silently missing player is worse than
// failing the request.
func (s *CompareService) Compare(ctx context.Context, selections []CompareSelection, season int, statNames []string) (Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompareService.Compare")
	defer span.End()

	if len(selections) == 0 {
		return Comparison{}, fmt.Errorf("%w: at least one player is required", ErrInvalidInput)
	}
	if len(selections) > MaxComparePlayers {
		return Comparison{}, fmt.Errorf("%w: at most %d players can be compared", ErrInvalidInput, MaxComparePlayers)
	}

	labels := player.StatNames()
	if len(statNames) > 0 {
		labels = make([]string, 0, len(statNames))
		for _, name := range statNames {
			if !player.IsStatName(name) {
				return Comparison{}, fmt.Errorf("%w: unknown stat %q", ErrInvalidInput, name)
			}
			labels = append(labels, name)
		}
	}

	out := Comparison{
		Labels:  labels,
		Players: make([]ComparedPlayer, 0, len(selections)),
	}
	for _, selection := range selections {
		record, err := s.players.GetPlayerStats(ctx, selection.Name, season, selection.League)
		if err != nil {
			return Comparison{}, fmt.Errorf("compare player %q: %w", selection.Name, err)
		}

		values := make([]int, len(labels))
		for i, label := range labels {
			value, _ := record.StatValue(label)
			values[i] = value
		}
		out.Players = append(out.Players, ComparedPlayer{
			Name:     record.Name,
			PhotoURL: record.PhotoURL,
			Values:   values,
		})
	}

	return out, nil
}
