// Package client holds the HTTP clients for the three upstream weather
// providers: the Open-Meteo geocoding API, the Open-Meteo forecast API and the
// NWS active-alerts API. All network failures are wrapped errors; none of the
// clients retries on its own (fallback policy lives in the caller).
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/models"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/observability"
)

// DefaultUserAgent identifies this service to upstream providers.
const DefaultUserAgent = "weather-app/1.0"

var (
	ErrPlaceNotFound   = errors.New("place not found")
	ErrUpstreamFailure = errors.New("upstream failure")
)

// GeocodeAPI resolves a place name to coordinates and a display name.
type GeocodeAPI interface {
	Resolve(ctx context.Context, name string) (models.ResolvedPlace, error)
}

// ForecastAPI fetches the daily forecast series for a coordinate pair.
type ForecastAPI interface {
	DailyForecast(ctx context.Context, lat, lon float64) (models.ForecastSeries, error)
}

// AlertsAPI fetches active alerts for a two-letter region code.
type AlertsAPI interface {
	ActiveAlerts(ctx context.Context, regionCode string) ([]models.AlertRecord, error)
}

// fetcher performs timed, header-tagged GET requests returning parsed JSON.
// Each provider client owns one, with its own timeout and circuit breaker.
type fetcher struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	timeout   time.Duration
	userAgent string
	accept    string
	provider  string // metrics label
}

func newFetcher(provider string, timeout time.Duration, userAgent, accept string) *fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        provider,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		timeout:   timeout,
		userAgent: userAgent,
		accept:    accept,
		provider:  provider,
	}
}

// getJSON issues the GET and decodes the body into out. Network errors,
// non-2xx statuses and malformed bodies all surface as wrapped errors; the
// breaker counts them as failures.
func (f *fetcher) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	start := time.Now()
	_, err := f.breaker.Execute(func() (interface{}, error) {
		return nil, f.do(ctx, rawURL, out)
	})
	status := "success"
	if err != nil {
		status = "error"
	}
	observability.RecordUpstreamCall(f.provider, status, time.Since(start).Seconds())
	return err
}

func (f *fetcher) do(ctx context.Context, rawURL string, out interface{}) error {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if f.accept != "" {
		req.Header.Set("Accept", f.accept)
	} else {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("request timeout: %w", err)
		}
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d", ErrUpstreamFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
