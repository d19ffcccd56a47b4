package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestForecastClient_DailyForecast_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "48.85" {
			t.Errorf("latitude = %q, want %q", q.Get("latitude"), "48.85")
		}
		if q.Get("longitude") != "2.35" {
			t.Errorf("longitude = %q, want %q", q.Get("longitude"), "2.35")
		}
		if q.Get("timezone") != "auto" {
			t.Errorf("timezone = %q, want %q", q.Get("timezone"), "auto")
		}
		if q.Get("daily") != dailyFields {
			t.Errorf("daily = %q, want %q", q.Get("daily"), dailyFields)
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"daily": map[string]interface{}{
				"time":               []string{"2025-06-01", "2025-06-02"},
				"temperature_2m_max": []float64{25.6, 27.1},
				"temperature_2m_min": []float64{15.2, 16.8},
				"precipitation_sum":  []float64{0, 2.5},
				"wind_speed_10m_max": []float64{12.3, 9.7},
				"uv_index_max":       []float64{7.5, 4.2},
				"sunrise":            []string{"2025-06-01T05:49", "2025-06-02T05:48"},
				"sunset":             []string{"2025-06-01T21:47", "2025-06-02T21:48"},
			},
		})
	}))
	defer server.Close()

	c := NewForecastClient(server.URL, 2*time.Second, "")
	series, err := c.DailyForecast(context.Background(), 48.85, 2.35)
	if err != nil {
		t.Fatalf("DailyForecast() error = %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2", len(series))
	}
	first := series[0]
	if first.Date != "2025-06-01" {
		t.Errorf("Date = %q, want %q", first.Date, "2025-06-01")
	}
	if first.TempMaxC != 25.6 || first.TempMinC != 15.2 {
		t.Errorf("temps = (%f, %f), want (25.6, 15.2)", first.TempMaxC, first.TempMinC)
	}
	if first.Sunrise != "2025-06-01T05:49" {
		t.Errorf("Sunrise = %q, want raw ISO datetime", first.Sunrise)
	}
	if series[1].PrecipMM != 2.5 {
		t.Errorf("PrecipMM = %f, want 2.5", series[1].PrecipMM)
	}
}

func TestForecastClient_DailyForecast_ShortParallelArrays(t *testing.T) {
	// Provider arrays shorter than the time axis must not panic; missing
	// values stay at their zero value.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"daily": map[string]interface{}{
				"time":               []string{"2025-06-01", "2025-06-02"},
				"temperature_2m_max": []float64{25.6},
			},
		})
	}))
	defer server.Close()

	c := NewForecastClient(server.URL, 2*time.Second, "")
	series, err := c.DailyForecast(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("DailyForecast() error = %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2", len(series))
	}
	if series[1].TempMaxC != 0 {
		t.Errorf("TempMaxC = %f, want 0 for missing value", series[1].TempMaxC)
	}
	if series[1].Sunrise != "" {
		t.Errorf("Sunrise = %q, want empty for missing value", series[1].Sunrise)
	}
}

func TestForecastClient_DailyForecast_EmptySeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"daily": map[string]interface{}{}})
	}))
	defer server.Close()

	c := NewForecastClient(server.URL, 2*time.Second, "")
	_, err := c.DailyForecast(context.Background(), 0, 0)
	if !errors.Is(err, ErrUpstreamFailure) {
		t.Errorf("DailyForecast() error = %v, want ErrUpstreamFailure", err)
	}
}

func TestForecastClient_DailyForecast_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewForecastClient(server.URL, 2*time.Second, "")
	_, err := c.DailyForecast(context.Background(), 0, 0)
	if !errors.Is(err, ErrUpstreamFailure) {
		t.Errorf("DailyForecast() error = %v, want ErrUpstreamFailure", err)
	}
}
