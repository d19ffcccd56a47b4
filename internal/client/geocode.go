package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/models"
)

// DefaultGeocodingURL is the Open-Meteo geocoding search endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// Geocoder resolves place names against the Open-Meteo geocoding API with a
// two-step fallback: the full phrase first, then the first whitespace token.
// Exactly two attempts, never more; a wrong city from a bare first-token query
// beats returning nothing.
type Geocoder struct {
	baseURL string
	f       *fetcher
}

func NewGeocoder(baseURL string, timeout time.Duration, userAgent string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &Geocoder{
		baseURL: baseURL,
		f:       newFetcher("geocoding", timeout, userAgent, ""),
	}
}

type geocodeResponse struct {
	Results []struct {
		Name        string  `json:"name"`
		Country     string  `json:"country"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	} `json:"results"`
}

// Resolve returns the best match for name, requesting a single English result.
// When the full phrase yields nothing and contains a space, the first token is
// tried alone (handles "Hyderabad India" when only "Hyderabad" is indexed).
// Returns ErrPlaceNotFound when both attempts come back empty.
func (g *Geocoder) Resolve(ctx context.Context, name string) (models.ResolvedPlace, error) {
	name = strings.TrimSpace(name)
	place, err := g.lookup(ctx, name)
	if err == nil {
		return place, nil
	}
	if strings.Contains(name, " ") {
		first := strings.Fields(name)[0]
		if place, retryErr := g.lookup(ctx, first); retryErr == nil {
			return place, nil
		}
	}
	return models.ResolvedPlace{}, err
}

func (g *Geocoder) lookup(ctx context.Context, name string) (models.ResolvedPlace, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var resp geocodeResponse
	if err := g.f.getJSON(ctx, g.baseURL+"?"+params.Encode(), &resp); err != nil {
		return models.ResolvedPlace{}, fmt.Errorf("geocode %q: %w", name, err)
	}
	if len(resp.Results) == 0 {
		return models.ResolvedPlace{}, fmt.Errorf("geocode %q: %w", name, ErrPlaceNotFound)
	}

	r := resp.Results[0]
	display := r.Name
	if r.Country != "" {
		display += ", " + r.Country
	}
	return models.ResolvedPlace{
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		DisplayName: display,
		CountryCode: r.CountryCode,
	}, nil
}
