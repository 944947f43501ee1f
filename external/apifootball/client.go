package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/kickdata/kickdata-api/internal/platform/logging"
	"github.com/kickdata/kickdata-api/internal/platform/resilience"
	"github.com/kickdata/kickdata-api/internal/usecase"
)

const (
	defaultBaseURL = "https://api-football-v1.p.rapidapi.com/v3"
	defaultAPIHost = "api-football-v1.p.rapidapi.com"

	// Squad listings page at 20 rows; a league season never needs more.
	maxProviderPages = 25
)

var errAPIFootballTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Key            string
	Host           string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the API-Football v3 REST API behind RapidAPI and maps its
// payloads into the provider types the services consume.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	key            string
	host           string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultAPIHost
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		key:            strings.TrimSpace(cfg.Key),
		host:           host,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// SearchPlayers runs the provider's substring player search scoped to one
// season and league, following paging until exhausted.
func (c *Client) SearchPlayers(ctx context.Context, search string, season, leagueID int) ([]usecase.ProviderPlayer, error) {
	query := map[string]string{
		"search": search,
		"season": strconv.Itoa(season),
		"league": strconv.Itoa(leagueID),
	}
	players, err := c.fetchPlayersPaged(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search players search=%q: %w", search, err)
	}
	return players, nil
}

// ListPlayersByTeam lists a club's full squad for one season and league.
func (c *Client) ListPlayersByTeam(ctx context.Context, teamID, season, leagueID int) ([]usecase.ProviderPlayer, error) {
	query := map[string]string{
		"team":   strconv.Itoa(teamID),
		"season": strconv.Itoa(season),
		"league": strconv.Itoa(leagueID),
	}
	players, err := c.fetchPlayersPaged(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list players team_id=%d: %w", teamID, err)
	}
	return players, nil
}

func (c *Client) fetchPlayersPaged(ctx context.Context, query map[string]string) ([]usecase.ProviderPlayer, error) {
	out := make([]usecase.ProviderPlayer, 0, 32)
	for page := 1; page <= maxProviderPages; page++ {
		pageQuery := make(map[string]string, len(query)+1)
		for key, value := range query {
			pageQuery[key] = value
		}
		pageQuery["page"] = strconv.Itoa(page)

		var envelope playersEnvelope
		if err := c.doJSON(ctx, "/players", pageQuery, &envelope); err != nil {
			return nil, err
		}
		if err := envelopeError(envelope.Errors); err != nil {
			return nil, fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err)
		}

		for _, entry := range envelope.Response {
			if entry.Player.ID <= 0 {
				continue
			}
			out = append(out, mapPlayerEntry(entry))
		}

		if envelope.Paging.Current >= envelope.Paging.Total {
			break
		}
	}
	return out, nil
}

// FindTeam resolves a club by name, optionally narrowed by country. The
// provider guarantees club names are unique within a country, so the first
// record is taken.
func (c *Client) FindTeam(ctx context.Context, name, country string) (usecase.ProviderTeam, error) {
	query := map[string]string{"name": name}
	if strings.TrimSpace(country) != "" {
		query["country"] = country
	}

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/teams", query, &envelope); err != nil {
		return usecase.ProviderTeam{}, fmt.Errorf("find team name=%q: %w", name, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return usecase.ProviderTeam{}, fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err)
	}

	for _, entry := range envelope.Response {
		if entry.Team.ID <= 0 {
			continue
		}
		return mapTeamEntry(entry), nil
	}
	return usecase.ProviderTeam{}, fmt.Errorf("%w: no club named %q", usecase.ErrNotFound, name)
}

// ListTeamsByLeague lists every club registered in a league season.
func (c *Client) ListTeamsByLeague(ctx context.Context, leagueID, season int) ([]usecase.ProviderTeam, error) {
	query := map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": strconv.Itoa(season),
	}

	out := make([]usecase.ProviderTeam, 0, 20)
	for page := 1; page <= maxProviderPages; page++ {
		pageQuery := make(map[string]string, len(query)+1)
		for key, value := range query {
			pageQuery[key] = value
		}
		pageQuery["page"] = strconv.Itoa(page)

		var envelope teamsEnvelope
		if err := c.doJSON(ctx, "/teams", pageQuery, &envelope); err != nil {
			return nil, fmt.Errorf("list teams league_id=%d: %w", leagueID, err)
		}
		if err := envelopeError(envelope.Errors); err != nil {
			return nil, fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err)
		}

		for _, entry := range envelope.Response {
			if entry.Team.ID <= 0 {
				continue
			}
			out = append(out, mapTeamEntry(entry))
		}

		if envelope.Paging.Current >= envelope.Paging.Total {
			break
		}
	}
	return out, nil
}

// TeamStatistics fetches a club's season aggregates for one league.
func (c *Client) TeamStatistics(ctx context.Context, teamID, season, leagueID int) (usecase.ProviderTeamStats, error) {
	query := map[string]string{
		"team":   strconv.Itoa(teamID),
		"season": strconv.Itoa(season),
		"league": strconv.Itoa(leagueID),
	}

	var envelope teamStatsEnvelope
	if err := c.doJSON(ctx, "/teams/statistics", query, &envelope); err != nil {
		return usecase.ProviderTeamStats{}, fmt.Errorf("team statistics team_id=%d: %w", teamID, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return usecase.ProviderTeamStats{}, fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err)
	}

	// Unknown team and season combinations come back as HTTP 200 with a
	// zeroed response object.
	if envelope.Response.Team.ID <= 0 {
		return usecase.ProviderTeamStats{}, fmt.Errorf("%w: no statistics for team_id=%d season=%d league_id=%d", usecase.ErrNotFound, teamID, season, leagueID)
	}

	return mapTeamStats(envelope.Response), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isAPIFootballCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		// Exhausted retries on a transient failure mean the provider is
		// down from the caller's point of view.
		if stderrors.Is(err, errAPIFootballTransient) {
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("X-RapidAPI-Key", c.key)
		req.Header.Set("X-RapidAPI-Host", c.host)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.key))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errAPIFootballTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return value
}

func isAPIFootballCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errAPIFootballTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
