package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kickdata/kickdata-api/internal/domain/league"
	"github.com/kickdata/kickdata-api/internal/platform/cache"
)

// Country coordinates are effectively static, so cached lookups stay
// valid for a long time.
const geocodeCacheTTL = 24 * time.Hour

// MapService builds the squad world-map payload: every player in a club's
// squad with their nationality geocoded to coordinates.
type MapService struct {
	registry *league.Registry
	provider StatsProvider
	geocoder Geocoder
	coords   *cache.Store
	logger   *slog.Logger
}

func NewMapService(registry *league.Registry, provider StatsProvider, geocoder Geocoder, logger *slog.Logger) *MapService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MapService{
		registry: registry,
		provider: provider,
		geocoder: geocoder,
		coords:   cache.NewStore(geocodeCacheTTL),
		logger:   logger,
	}
}

type geoPoint struct {
	Lat float64
	Lon float64
}

// SquadMapPlayer is one squad member pin. Latitude and Longitude are nil
// when the nationality could not be geocoded; the player is still listed.
type SquadMapPlayer struct {
	Name        string
	PhotoURL    string
	Nationality string
	Age         int
	Latitude    *float64
	Longitude   *float64
}

// SquadMap is the full payload for one club.
type SquadMap struct {
	TeamName string
	LogoURL  string
	Players  []SquadMapPlayer
}

// GetSquadMap looks up the club, lists its squad for the season and
// geocodes each distinct nationality once. Geocoding failures degrade to
// pins without coordinates instead of failing the whole map.
func (s *MapService) GetSquadMap(ctx context.Context, clubName, country string, season int, leagueName string) (SquadMap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MapService.GetSquadMap")
	defer span.End()

	if strings.TrimSpace(clubName) == "" {
		return SquadMap{}, fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}
	if season <= 0 {
		return SquadMap{}, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	leagueID, ok := s.registry.ID(leagueName)
	if !ok {
		return SquadMap{}, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, leagueName)
	}

	found, err := s.provider.FindTeam(ctx, clubName, country)
	if err != nil {
		return SquadMap{}, err
	}

	squad, err := s.provider.ListPlayersByTeam(ctx, found.ID, season, leagueID)
	if err != nil {
		return SquadMap{}, err
	}
	if len(squad) == 0 {
		return SquadMap{}, fmt.Errorf("%w: no squad players for team %q in season %d", ErrNotFound, found.Name, season)
	}

	type coords struct {
		lat, lon float64
		ok       bool
	}
	coordsByCountry := make(map[string]coords)

	out := SquadMap{
		TeamName: found.Name,
		LogoURL:  found.LogoURL,
		Players:  make([]SquadMapPlayer, 0, len(squad)),
	}
	for _, member := range squad {
		pin := SquadMapPlayer{
			Name:        member.DisplayName(),
			PhotoURL:    member.PhotoURL,
			Nationality: member.Nationality,
			Age:         member.Age,
		}

		nationality := strings.TrimSpace(member.Nationality)
		if nationality != "" {
			located, seen := coordsByCountry[nationality]
			if !seen {
				value, err := s.coords.GetOrLoad(ctx, "nationality:"+nationality, func(ctx context.Context) (any, error) {
					lat, lon, err := s.geocoder.Geocode(ctx, nationality)
					if err != nil {
						return nil, err
					}
					return geoPoint{Lat: lat, Lon: lon}, nil
				})
				switch {
				case err == nil:
					point, _ := value.(geoPoint)
					located = coords{lat: point.Lat, lon: point.Lon, ok: true}
				case errors.Is(err, ctx.Err()) && ctx.Err() != nil:
					return SquadMap{}, err
				default:
					s.logger.WarnContext(ctx, "geocode nationality failed",
						"nationality", nationality,
						"error", err,
					)
				}
				coordsByCountry[nationality] = located
			}
			if located.ok {
				lat, lon := located.lat, located.lon
				pin.Latitude = &lat
				pin.Longitude = &lon
			}
		}

		out.Players = append(out.Players, pin)
	}

	return out, nil
}
