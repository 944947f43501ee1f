package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/kickdata/kickdata-api/internal/domain/league"
	"github.com/kickdata/kickdata-api/internal/usecase"
)

type fakeProvider struct {
	searchPlayers     func(ctx context.Context, search string, season, leagueID int) ([]usecase.ProviderPlayer, error)
	listPlayersByTeam func(ctx context.Context, teamID, season, leagueID int) ([]usecase.ProviderPlayer, error)
	findTeam          func(ctx context.Context, name, country string) (usecase.ProviderTeam, error)
	listTeamsByLeague func(ctx context.Context, leagueID, season int) ([]usecase.ProviderTeam, error)
	teamStatistics    func(ctx context.Context, teamID, season, leagueID int) (usecase.ProviderTeamStats, error)
}

func (f *fakeProvider) SearchPlayers(ctx context.Context, search string, season, leagueID int) ([]usecase.ProviderPlayer, error) {
	return f.searchPlayers(ctx, search, season, leagueID)
}

func (f *fakeProvider) ListPlayersByTeam(ctx context.Context, teamID, season, leagueID int) ([]usecase.ProviderPlayer, error) {
	return f.listPlayersByTeam(ctx, teamID, season, leagueID)
}

func (f *fakeProvider) FindTeam(ctx context.Context, name, country string) (usecase.ProviderTeam, error) {
	return f.findTeam(ctx, name, country)
}

func (f *fakeProvider) ListTeamsByLeague(ctx context.Context, leagueID, season int) ([]usecase.ProviderTeam, error) {
	return f.listTeamsByLeague(ctx, leagueID, season)
}

func (f *fakeProvider) TeamStatistics(ctx context.Context, teamID, season, leagueID int) (usecase.ProviderTeamStats, error) {
	return f.teamStatistics(ctx, teamID, season, leagueID)
}

type fakeGeocoder struct{}

func (fakeGeocoder) Geocode(ctx context.Context, place string) (float64, float64, error) {
	return 51.5, -0.1, nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func fullProviderPlayerStats() *usecase.ProviderPlayerStats {
	return &usecase.ProviderPlayerStats{
		Goals:            intPtr(19),
		Assists:          intPtr(10),
		ShotsTotal:       intPtr(90),
		ShotsOn:          intPtr(45),
		DribbleAttempts:  intPtr(80),
		DribbleSuccesses: intPtr(41),
		KeyPasses:        intPtr(60),
		PassAccuracy:     intPtr(78),
		DuelsWon:         intPtr(110),
		TacklesTotal:     intPtr(12),
		Interceptions:    intPtr(3),
		Blocks:           intPtr(1),
		FoulsDrawn:       intPtr(30),
		FoulsCommitted:   intPtr(10),
	}
}

func newTestRouter(provider usecase.StatsProvider) http.Handler {
	registry := league.NewRegistry(league.DefaultIDByName())
	playerService := usecase.NewPlayerService(registry, provider, nil)
	handler := NewHandler(
		usecase.NewLeagueService(registry, provider, 2, nil),
		playerService,
		usecase.NewTeamService(registry, provider, nil),
		usecase.NewCompareService(playerService),
		usecase.NewMapService(registry, provider, fakeGeocoder{}, nil),
		nil,
	)
	return NewRouter(handler, nil, []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestListLeaguesRoute(t *testing.T) {
	router := newTestRouter(&fakeProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 10 {
		t.Fatalf("expected 10 leagues, got %v", body["data"])
	}
}

func TestGetPlayerStatsRoute(t *testing.T) {
	provider := &fakeProvider{
		searchPlayers: func(ctx context.Context, search string, season, leagueID int) ([]usecase.ProviderPlayer, error) {
			if !strings.Contains("mohamed salah", search) {
				return nil, nil
			}
			return []usecase.ProviderPlayer{{
				ID:    306,
				Name:  "Mohamed Salah",
				Stats: fullProviderPlayerStats(),
			}}, nil
		},
	}
	router := newTestRouter(provider)

	t.Run("ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/stats?name=Mohamed+Salah&season=2023&league=Premier+League", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		data, ok := body["data"].(map[string]any)
		if !ok {
			t.Fatalf("expected data object, got %v", body["data"])
		}
		if data["name"] != "Mohamed Salah" {
			t.Fatalf("unexpected player name %v", data["name"])
		}
		stats, ok := data["stats"].([]any)
		if !ok || len(stats) != 14 {
			t.Fatalf("expected 14 ordered stats, got %v", data["stats"])
		}
		first, _ := stats[0].(map[string]any)
		if first["name"] != "Goals" {
			t.Fatalf("expected Goals first, got %v", first)
		}
	})

	t.Run("bad season", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/stats?name=Salah&season=latest&league=Premier+League", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown league", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/stats?name=Salah&season=2023&league=Moon+League", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("provider outage maps to 503", func(t *testing.T) {
		down := &fakeProvider{
			searchPlayers: func(ctx context.Context, search string, season, leagueID int) ([]usecase.ProviderPlayer, error) {
				return nil, fmt.Errorf("%w: provider status=502", usecase.ErrDependencyUnavailable)
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/players/stats?name=Salah&season=2023&league=Premier+League", nil)
		rec := httptest.NewRecorder()
		newTestRouter(down).ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		errBody, ok := body["error"].(map[string]any)
		if !ok {
			t.Fatalf("expected error object, got %v", body["error"])
		}
		if errBody["status"] != "UNAVAILABLE" {
			t.Fatalf("unexpected error status %v", errBody["status"])
		}
	})
}

func TestComparePlayersRoute(t *testing.T) {
	provider := &fakeProvider{
		searchPlayers: func(ctx context.Context, search string, season, leagueID int) ([]usecase.ProviderPlayer, error) {
			switch {
			case strings.Contains("mohamed salah", search):
				return []usecase.ProviderPlayer{{ID: 306, Name: "Mohamed Salah", Stats: fullProviderPlayerStats()}}, nil
			case strings.Contains("harry kane", search):
				return []usecase.ProviderPlayer{{ID: 184, Name: "Harry Kane", Stats: fullProviderPlayerStats()}}, nil
			default:
				return nil, nil
			}
		},
	}
	router := newTestRouter(provider)

	t.Run("ok", func(t *testing.T) {
		payload := `{"season": 2023, "players": [{"name": "Salah", "league": "Premier League"}, {"name": "Kane", "league": "Bundesliga"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/players/compare", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		data, _ := body["data"].(map[string]any)
		players, ok := data["players"].([]any)
		if !ok || len(players) != 2 {
			t.Fatalf("expected 2 compared players, got %v", data["players"])
		}
	})

	t.Run("too many players", func(t *testing.T) {
		payload := `{"season": 2023, "players": [
			{"name": "A", "league": "Premier League"},
			{"name": "B", "league": "Premier League"},
			{"name": "C", "league": "Premier League"},
			{"name": "D", "league": "Premier League"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/players/compare", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/players/compare", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestGetTeamStatsRoute(t *testing.T) {
	provider := &fakeProvider{
		findTeam: func(ctx context.Context, name, country string) (usecase.ProviderTeam, error) {
			return usecase.ProviderTeam{ID: 42, Name: "Arsenal", Country: "England"}, nil
		},
		teamStatistics: func(ctx context.Context, teamID, season, leagueID int) (usecase.ProviderTeamStats, error) {
			return usecase.ProviderTeamStats{
				TeamName:            "Arsenal",
				Form:                strPtr("WWDLW"),
				Played:              usecase.IntTriple{Home: intPtr(19), Away: intPtr(19), Total: intPtr(38)},
				Wins:                usecase.IntTriple{Home: intPtr(14), Away: intPtr(12), Total: intPtr(26)},
				Draws:               usecase.IntTriple{Home: intPtr(3), Away: intPtr(3), Total: intPtr(6)},
				Losses:              usecase.IntTriple{Home: intPtr(2), Away: intPtr(4), Total: intPtr(6)},
				GoalsFor:            usecase.IntTriple{Home: intPtr(48), Away: intPtr(40), Total: intPtr(88)},
				GoalsAgainst:        usecase.IntTriple{Home: intPtr(16), Away: intPtr(27), Total: intPtr(43)},
				GoalsForAverage:     usecase.StringTriple{Home: strPtr("2.5"), Away: strPtr("2.1"), Total: strPtr("2.3")},
				GoalsAgainstAverage: usecase.StringTriple{Home: strPtr("0.8"), Away: strPtr("1.4"), Total: strPtr("1.1")},
				StreakWins:          intPtr(7),
				StreakDraws:         intPtr(2),
				StreakLosses:        intPtr(1),
				BiggestWinHome:      strPtr("5-0"),
				BiggestWinAway:      strPtr("4-1"),
				BiggestLossHome:     strPtr("1-3"),
				BiggestLossAway:     strPtr("0-3"),
				CleanSheets:         usecase.IntTriple{Home: intPtr(10), Away: intPtr(5), Total: intPtr(15)},
				FailedToScore:       usecase.IntTriple{Home: intPtr(2), Away: intPtr(3), Total: intPtr(5)},
				Lineups:             []usecase.ProviderLineup{{Formation: "4-3-3", Played: 30}},
			}, nil
		},
	}
	router := newTestRouter(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/stats?name=Arsenal&country=England&season=2023&league=Premier+League", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["name"] != "Arsenal" {
		t.Fatalf("unexpected team name %v", data["name"])
	}
	if got, _ := data["totalGames"].(float64); got != 38 {
		t.Fatalf("unexpected totalGames %v", data["totalGames"])
	}
	// (26 - 6 + 88) / 38 = 2.84...
	if data["band"] != "green" {
		t.Fatalf("unexpected band %v", data["band"])
	}
}

func TestGetSquadMapRoute(t *testing.T) {
	provider := &fakeProvider{
		findTeam: func(ctx context.Context, name, country string) (usecase.ProviderTeam, error) {
			return usecase.ProviderTeam{ID: 40, Name: "Liverpool", Country: "England"}, nil
		},
		listPlayersByTeam: func(ctx context.Context, teamID, season, leagueID int) ([]usecase.ProviderPlayer, error) {
			return []usecase.ProviderPlayer{
				{ID: 1, Name: "Mohamed Salah", Nationality: "Egypt", Age: 31},
				{ID: 2, Name: "Virgil van Dijk", Nationality: "Netherlands", Age: 32},
			}, nil
		},
	}
	router := newTestRouter(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/squad-map?name=Liverpool&country=England&season=2023&league=Premier+League", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	players, ok := data["players"].([]any)
	if !ok || len(players) != 2 {
		t.Fatalf("expected 2 pins, got %v", data["players"])
	}
	first, _ := players[0].(map[string]any)
	if first["latitude"] == nil {
		t.Fatalf("expected coordinates on pin, got %v", first)
	}
}

func TestGetLeaguePerformanceRoute(t *testing.T) {
	provider := &fakeProvider{
		listTeamsByLeague: func(ctx context.Context, leagueID, season int) ([]usecase.ProviderTeam, error) {
			return nil, nil
		},
	}
	router := newTestRouter(provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/performance?league=Premier+League&season=2023", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for empty league, got %d", rec.Code)
	}
}
