package geocode

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/kickdata/kickdata-api/internal/platform/resilience"
	"github.com/kickdata/kickdata-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

var errGeocodeTransient = crerr.New("geocode transient failure")

type ClientConfig struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client resolves place names to coordinates through the Nominatim search
// API. Nominatim's usage policy requires an identifying User-Agent.
type Client struct {
	client         *http.Client
	baseURL        string
	userAgent      string
	retries        int
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:        baseURL,
		userAgent:      strings.TrimSpace(cfg.UserAgent),
		retries:        maxInt(cfg.Retries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the best-match coordinates for a place name.
func (c *Client) Geocode(ctx context.Context, place string) (float64, float64, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return 0, 0, crerr.New("place is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "geocode circuit breaker rejected request", "state", c.breaker.State())
			return 0, 0, fmt.Errorf("%w: geocoding service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	baseURL, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return 0, 0, crerr.Wrap(err, "invalid GEOCODE_BASE_URL")
	}

	values := url.Values{}
	values.Set("q", place)
	values.Set("format", "json")
	values.Set("limit", "1")
	fullURL := baseURL + "/search?" + values.Encode()

	c.logger.DebugContext(ctx, "geocode request", "place", place, "curl_preview", buildGeocodeCurlPreview(fullURL, c.userAgent))

	out, err, _ := c.flight.Do(place, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		c.recordCircuitResult(reqErr)
		return raw, reqErr
	})
	if err != nil {
		return 0, 0, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected response payload type %T", out)
	}

	var results []searchResult
	if err := sonic.Unmarshal(raw, &results); err != nil {
		return 0, 0, fmt.Errorf("decode geocode payload: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: no location matches %q", usecase.ErrNotFound, place)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lat), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lon), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return lat, lon, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "create geocode request")
		}
		req.Header.Set("accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errGeocodeTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errGeocodeTransient, readErr)
			} else if resp.StatusCode/100 == 2 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: geocode status=%d body=%s", errGeocodeTransient, resp.StatusCode, strings.TrimSpace(string(raw)))
			} else {
				return nil, fmt.Errorf("geocode status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
			}
		}

		if attempt == c.retries {
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
		lastErr = fmt.Errorf("geocode request failed")
	}
	c.logger.WarnContext(ctx, "geocode request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err != nil && isGeocodeCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isGeocodeCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errGeocodeTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildGeocodeCurlPreview(fullURL, userAgent string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart(shellQuote(fullURL))
	if userAgent != "" {
		appendPart("-H")
		appendPart(shellQuote("User-Agent: " + userAgent))
	}

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
