package apifootball

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kickdata/kickdata-api/internal/platform/resilience"
	"github.com/kickdata/kickdata-api/internal/usecase"
)

func newTestClient(t *testing.T, server *httptest.Server, maxRetries int) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Key:        "test-key",
		Host:       "api-football-v1.p.rapidapi.com",
		MaxRetries: maxRetries,
	})
}

func playersPage(page, total int, players string) string {
	return fmt.Sprintf(`{
		"get": "players",
		"errors": [],
		"results": 1,
		"paging": {"current": %d, "total": %d},
		"response": [%s]
	}`, page, total, players)
}

func TestSearchPlayers_FollowsPaging(t *testing.T) {
	t.Parallel()

	pageOne := `{
		"player": {"id": 306, "name": "Mohamed Salah", "firstname": "Mohamed", "lastname": "Salah", "age": 31, "nationality": "Egypt", "photo": "https://media.example/306.png"},
		"statistics": [{
			"team": {"id": 40, "name": "Liverpool", "logo": "https://media.example/40.png"},
			"shots": {"total": 90, "on": 45},
			"goals": {"total": 19, "assists": null},
			"passes": {"key": 60, "accuracy": 78},
			"tackles": {"total": 12, "blocks": 1, "interceptions": 3},
			"duels": {"won": 110},
			"dribbles": {"attempts": 80, "success": 41},
			"fouls": {"drawn": 30, "committed": 10}
		}]
	}`
	pageTwo := `{
		"player": {"id": 307, "name": "Moha Salah Eldin", "age": 24, "nationality": "Egypt"},
		"statistics": []
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		if got := r.Header.Get("X-RapidAPI-Host"); got != "api-football-v1.p.rapidapi.com" {
			t.Errorf("unexpected api host header %q", got)
		}
		if r.URL.Path != "/players" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("search") != "salah" || query.Get("season") != "2023" || query.Get("league") != "39" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		if query.Get("page") == "2" {
			fmt.Fprint(w, playersPage(2, 2, pageTwo))
			return
		}
		fmt.Fprint(w, playersPage(1, 2, pageOne))
	}))
	defer server.Close()

	client := newTestClient(t, server, 0)
	players, err := client.SearchPlayers(context.Background(), "salah", 2023, 39)
	if err != nil {
		t.Fatalf("SearchPlayers failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players across pages, got %d", len(players))
	}

	first := players[0]
	if first.ID != 306 || first.Name != "Mohamed Salah" || first.TeamID != 40 {
		t.Fatalf("unexpected first player: %+v", first)
	}
	if first.Stats == nil {
		t.Fatal("expected statistics for first player")
	}
	if first.Stats.Goals == nil || *first.Stats.Goals != 19 {
		t.Fatalf("goals leaf not mapped: %+v", first.Stats.Goals)
	}
	if first.Stats.Assists != nil {
		t.Fatalf("null assists must stay nil, got %v", *first.Stats.Assists)
	}
	if first.Stats.Interceptions == nil || *first.Stats.Interceptions != 3 {
		t.Fatalf("interceptions leaf not mapped: %+v", first.Stats.Interceptions)
	}

	if players[1].Stats != nil {
		t.Fatalf("player without statistics rows must carry nil stats, got %+v", players[1].Stats)
	}
}

func TestSearchPlayers_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream blew up", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, playersPage(1, 1, `{"player": {"id": 1, "name": "Solo"}, "statistics": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, 1)
	players, err := client.SearchPlayers(context.Background(), "solo", 2023, 39)
	if err != nil {
		t.Fatalf("SearchPlayers failed after retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one retry, got %d calls", calls)
	}
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
}

func TestSearchPlayers_ExhaustedRetriesSurfaceUnavailable(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "request timeout", http.StatusRequestTimeout)
	}))
	defer server.Close()

	client := newTestClient(t, server, 1)
	_, err := client.SearchPlayers(context.Background(), "solo", 2023, 39)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable after exhausted retries, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("408 must be retried once, got %d calls", calls)
	}
}

func TestSearchPlayers_NetworkFailureSurfacesUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(t, server, 0)
	_, err := client.SearchPlayers(context.Background(), "solo", 2023, 39)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable on connection failure, got %v", err)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	retryable := []int{http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway}
	for _, code := range retryable {
		if !isRetryableStatus(code) {
			t.Fatalf("status %d must be retryable", code)
		}
	}
	for _, code := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound} {
		if isRetryableStatus(code) {
			t.Fatalf("status %d must not be retryable", code)
		}
	}
}

func TestSearchPlayers_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server, 3)
	if _, err := client.SearchPlayers(context.Background(), "solo", 2023, 39); err == nil {
		t.Fatal("expected error on 400")
	}
	if calls != 1 {
		t.Fatalf("400 must not be retried, got %d calls", calls)
	}
}

func TestSearchPlayers_EnvelopeErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"get": "players",
			"errors": {"token": "Error/Missing application key."},
			"results": 0,
			"paging": {"current": 1, "total": 1},
			"response": []
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, 0)
	_, err := client.SearchPlayers(context.Background(), "salah", 2023, 39)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestFindTeam(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("name") == "Liverpool" {
			fmt.Fprint(w, `{
				"get": "teams",
				"errors": [],
				"results": 1,
				"paging": {"current": 1, "total": 1},
				"response": [{"team": {"id": 40, "name": "Liverpool", "country": "England", "logo": "https://media.example/40.png"}}]
			}`)
			return
		}
		fmt.Fprint(w, `{"get": "teams", "errors": [], "results": 0, "paging": {"current": 1, "total": 1}, "response": []}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, 0)

	t.Run("first record wins", func(t *testing.T) {
		team, err := client.FindTeam(context.Background(), "Liverpool", "England")
		if err != nil {
			t.Fatalf("FindTeam failed: %v", err)
		}
		if team.ID != 40 || team.Name != "Liverpool" || team.Country != "England" {
			t.Fatalf("unexpected team: %+v", team)
		}
	})

	t.Run("unknown club", func(t *testing.T) {
		_, err := client.FindTeam(context.Background(), "Atlantis FC", "England")
		if !errors.Is(err, usecase.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTeamStatistics(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/statistics" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("team") != "42" {
			fmt.Fprint(w, `{"get": "teams/statistics", "errors": [], "results": 0, "response": {}}`)
			return
		}
		fmt.Fprint(w, `{
			"get": "teams/statistics",
			"errors": [],
			"results": 11,
			"response": {
				"team": {"id": 42, "name": "Arsenal", "logo": "https://media.example/42.png"},
				"form": "WWDLW",
				"fixtures": {
					"played": {"home": 19, "away": 19, "total": 38},
					"wins": {"home": 15, "away": 11, "total": 26},
					"draws": {"home": 2, "away": 3, "total": 5},
					"loses": {"home": 2, "away": 5, "total": 7}
				},
				"goals": {
					"for": {
						"total": {"home": 48, "away": 40, "total": 88},
						"average": {"home": "2.5", "away": "2.1", "total": "2.3"}
					},
					"against": {
						"total": {"home": 16, "away": 13, "total": 29},
						"average": {"home": "0.8", "away": "0.7", "total": "0.8"}
					}
				},
				"biggest": {
					"streak": {"wins": 8, "draws": 2, "loses": 1},
					"wins": {"home": "5-0", "away": "0-6"},
					"loses": {"home": "0-1", "away": "3-1"}
				},
				"clean_sheet": {"home": 10, "away": 8, "total": 18},
				"failed_to_score": {"home": 1, "away": 2, "total": 3},
				"lineups": [
					{"formation": "4-3-3", "played": 30},
					{"formation": "4-4-2", "played": 8}
				]
			}
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, 0)

	t.Run("maps season aggregates", func(t *testing.T) {
		stats, err := client.TeamStatistics(context.Background(), 42, 2023, 39)
		if err != nil {
			t.Fatalf("TeamStatistics failed: %v", err)
		}
		if stats.TeamName != "Arsenal" {
			t.Fatalf("unexpected team name %q", stats.TeamName)
		}
		if stats.Played.Total == nil || *stats.Played.Total != 38 {
			t.Fatalf("played total not mapped: %+v", stats.Played)
		}
		if stats.GoalsFor.Total == nil || *stats.GoalsFor.Total != 88 {
			t.Fatalf("goals for total not mapped: %+v", stats.GoalsFor)
		}
		if stats.GoalsForAverage.Home == nil || *stats.GoalsForAverage.Home != "2.5" {
			t.Fatalf("goals average kept as string: %+v", stats.GoalsForAverage)
		}
		if stats.Form == nil || *stats.Form != "WWDLW" {
			t.Fatalf("form not mapped: %+v", stats.Form)
		}
		if stats.BiggestWinAway == nil || *stats.BiggestWinAway != "0-6" {
			t.Fatalf("biggest away win not mapped: %+v", stats.BiggestWinAway)
		}
		if len(stats.Lineups) != 2 || stats.Lineups[0].Formation != "4-3-3" || stats.Lineups[0].Played != 30 {
			t.Fatalf("lineups not mapped: %+v", stats.Lineups)
		}
	})

	t.Run("zeroed payload means unknown team", func(t *testing.T) {
		_, err := client.TeamStatistics(context.Background(), 9999, 2023, 39)
		if !errors.Is(err, usecase.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListTeamsByLeague_FollowsPaging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"get": "teams", "errors": [], "results": 1, "paging": {"current": 2, "total": 2}, "response": [{"team": {"id": 50, "name": "Manchester City", "country": "England"}}]}`)
			return
		}
		fmt.Fprint(w, `{"get": "teams", "errors": [], "results": 1, "paging": {"current": 1, "total": 2}, "response": [{"team": {"id": 40, "name": "Liverpool", "country": "England"}}]}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, 0)
	teams, err := client.ListTeamsByLeague(context.Background(), 39, 2023)
	if err != nil {
		t.Fatalf("ListTeamsByLeague failed: %v", err)
	}
	if len(teams) != 2 || teams[0].ID != 40 || teams[1].ID != 50 {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}

func TestDoJSON_CircuitOpenRejectsRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Key:        "test-key",
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
		},
	})

	if _, err := client.SearchPlayers(context.Background(), "salah", 2023, 39); err == nil {
		t.Fatal("expected transport failure")
	}

	_, err := client.SearchPlayers(context.Background(), "salah", 2023, 39)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable while circuit open, got %v", err)
	}
}
