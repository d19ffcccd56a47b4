package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/client"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/models"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/respond"
)

type stubGeocoder struct {
	place models.ResolvedPlace
	err   error
	calls int
	names []string
}

func (s *stubGeocoder) Resolve(ctx context.Context, name string) (models.ResolvedPlace, error) {
	s.calls++
	s.names = append(s.names, name)
	return s.place, s.err
}

type stubForecaster struct {
	series models.ForecastSeries
	err    error
	calls  int
}

func (s *stubForecaster) DailyForecast(ctx context.Context, lat, lon float64) (models.ForecastSeries, error) {
	s.calls++
	return s.series, s.err
}

func testSeries() models.ForecastSeries {
	return models.ForecastSeries{
		{Date: "2025-06-01", TempMaxC: 22.4, TempMinC: 12.1, WindKPH: 14.2, UVIndex: 5.1},
		{Date: "2025-06-02", TempMaxC: 23.8, TempMinC: 13.5, WindKPH: 11.7},
	}
}

func TestAnswer_Success(t *testing.T) {
	geo := &stubGeocoder{place: models.ResolvedPlace{
		DisplayName: "London, United Kingdom",
		Latitude:    51.5,
		Longitude:   -0.12,
	}}
	fc := &stubForecaster{series: testSeries()}
	svc := NewQueryService(geo, fc)

	got := svc.Answer(context.Background(), "What is the weather in London?")
	if !strings.HasPrefix(got, "Hello! Here's the weather update for London, United Kingdom. ") {
		t.Errorf("Answer() opening = %q", got)
	}
	if geo.calls != 1 {
		t.Errorf("geocoder calls = %d, want 1", geo.calls)
	}
	if geo.names[0] != "London" {
		t.Errorf("geocoded name = %q, want %q", geo.names[0], "London")
	}
	if fc.calls != 1 {
		t.Errorf("forecast calls = %d, want 1", fc.calls)
	}
}

func TestAnswer_NoPlaceExtracted(t *testing.T) {
	geo := &stubGeocoder{}
	fc := &stubForecaster{}
	svc := NewQueryService(geo, fc)

	got := svc.Answer(context.Background(), "what is the weather today")
	if got != respond.MsgNoPlace {
		t.Errorf("Answer() = %q, want %q", got, respond.MsgNoPlace)
	}
	if geo.calls != 0 {
		t.Errorf("geocoder calls = %d, want 0 when extraction fails", geo.calls)
	}
	if fc.calls != 0 {
		t.Errorf("forecast calls = %d, want 0 when extraction fails", fc.calls)
	}
}

func TestAnswer_PlaceNotFound(t *testing.T) {
	geo := &stubGeocoder{err: client.ErrPlaceNotFound}
	fc := &stubForecaster{}
	svc := NewQueryService(geo, fc)

	got := svc.Answer(context.Background(), "weather in Nowhereville")
	want := "Sorry, I couldn't find weather data for 'Nowhereville'. Please check the city name and try again."
	if got != want {
		t.Errorf("Answer() = %q, want %q", got, want)
	}
	if fc.calls != 0 {
		t.Errorf("forecast calls = %d, want 0 when geocoding fails", fc.calls)
	}
}

func TestAnswer_GeocodeUpstreamFailureReadsAsNotFound(t *testing.T) {
	// A provider outage during geocoding renders the same as an unknown
	// place; the distinction only exists in logs and metrics.
	geo := &stubGeocoder{err: errors.New("connection refused")}
	svc := NewQueryService(geo, &stubForecaster{})

	got := svc.Answer(context.Background(), "weather in Paris")
	if !strings.Contains(got, "couldn't find weather data for 'Paris'") {
		t.Errorf("Answer() = %q, want place-not-found text", got)
	}
}

func TestAnswer_ForecastFailure(t *testing.T) {
	geo := &stubGeocoder{place: models.ResolvedPlace{DisplayName: "Paris, France"}}
	fc := &stubForecaster{err: client.ErrUpstreamFailure}
	svc := NewQueryService(geo, fc)

	got := svc.Answer(context.Background(), "weather in Paris")
	if got != respond.MsgForecastUnavailable {
		t.Errorf("Answer() = %q, want %q", got, respond.MsgForecastUnavailable)
	}
}

func TestAnswer_CorrectionFlowsToGeocoder(t *testing.T) {
	geo := &stubGeocoder{place: models.ResolvedPlace{DisplayName: "Mussoorie, India"}}
	fc := &stubForecaster{series: testSeries()}
	svc := NewQueryService(geo, fc)

	svc.Answer(context.Background(), "weather in massuri")
	if len(geo.names) != 1 || geo.names[0] != "Mussoorie" {
		t.Errorf("geocoded names = %v, want [Mussoorie]", geo.names)
	}
}
