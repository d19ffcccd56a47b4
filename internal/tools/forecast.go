package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/client"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/respond"
)

// forecastToolDays caps the tool's forecast output. The retrieval layer keeps
// whatever the provider returns; only the rendered block is capped.
const forecastToolDays = 5

// ForecastTool exposes the multi-day forecast by coordinate pair. Agent
// callers pass coordinates in whatever JSON type their framework produced, so
// latitude/longitude accept numbers or numeric strings and coercion failure is
// reported as text rather than a fault.
type ForecastTool struct {
	forecasts client.ForecastAPI
}

var _ Executor = (*ForecastTool)(nil)

func NewForecastTool(forecasts client.ForecastAPI) *ForecastTool {
	return &ForecastTool{forecasts: forecasts}
}

func (t *ForecastTool) Definition() Tool {
	return NewFunctionTool(
		"get_global_forecast",
		"Get a multi-day global weather forecast for coordinates.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"latitude": {
					Type:        "number",
					Description: "Latitude of the location (e.g. 51.5)",
				},
				"longitude": {
					Type:        "number",
					Description: "Longitude of the location (e.g. -0.12)",
				},
			},
			Required: []string{"latitude", "longitude"},
		},
	)
}

func (t *ForecastTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments for get_global_forecast: %w", err)
	}

	lat, latOK := coerceFloat(args.Latitude)
	lon, lonOK := coerceFloat(args.Longitude)
	if !latOK || !lonOK {
		return fmt.Sprintf("Error: Latitude and Longitude must be numbers. Received: %s, %s",
			rawDisplay(args.Latitude), rawDisplay(args.Longitude)), nil
	}

	series, err := t.forecasts.DailyForecast(ctx, lat, lon)
	if err != nil {
		return respond.MsgForecastUnavailable, nil
	}
	return respond.ForecastDetail(series, forecastToolDays), nil
}

// coerceFloat accepts a JSON number or a numeric string.
func coerceFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// rawDisplay renders the received JSON value for the error message, without
// surrounding quotes for strings.
func rawDisplay(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "<missing>"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
