package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/models"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// dailyFields is the fixed set of daily aggregates requested per coordinate.
const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max,uv_index_max,sunrise,sunset"

// ForecastClient fetches multi-day daily forecasts from the global provider.
// The full provider series is returned as fetched; any display cap (the 5-day
// summary window) is applied by the renderer, not here.
type ForecastClient struct {
	baseURL string
	f       *fetcher
}

func NewForecastClient(baseURL string, timeout time.Duration, userAgent string) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastClient{
		baseURL: baseURL,
		f:       newFetcher("forecast", timeout, userAgent, ""),
	}
}

type forecastResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
		UVIndexMax       []float64 `json:"uv_index_max"`
		Sunrise          []string  `json:"sunrise"`
		Sunset           []string  `json:"sunset"`
	} `json:"daily"`
}

// DailyForecast fetches the daily series for the coordinate pair in its
// auto-detected local timezone. Sunrise/sunset stay raw ISO datetimes; the
// date portion is only discarded at render time.
func (c *ForecastClient) DailyForecast(ctx context.Context, lat, lon float64) (models.ForecastSeries, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")

	var resp forecastResponse
	if err := c.f.getJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	d := resp.Daily
	if len(d.Time) == 0 {
		return nil, fmt.Errorf("fetch forecast: %w: empty daily series", ErrUpstreamFailure)
	}

	series := make(models.ForecastSeries, 0, len(d.Time))
	for i, date := range d.Time {
		rec := models.DailyRecord{Date: date}
		if i < len(d.TemperatureMax) {
			rec.TempMaxC = d.TemperatureMax[i]
		}
		if i < len(d.TemperatureMin) {
			rec.TempMinC = d.TemperatureMin[i]
		}
		if i < len(d.PrecipitationSum) {
			rec.PrecipMM = d.PrecipitationSum[i]
		}
		if i < len(d.WindSpeedMax) {
			rec.WindKPH = d.WindSpeedMax[i]
		}
		if i < len(d.UVIndexMax) {
			rec.UVIndex = d.UVIndexMax[i]
		}
		if i < len(d.Sunrise) {
			rec.Sunrise = d.Sunrise[i]
		}
		if i < len(d.Sunset) {
			rec.Sunset = d.Sunset[i]
		}
		series = append(series, rec)
	}
	return series, nil
}
