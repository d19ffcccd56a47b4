// Package service holds the query-to-answer pipeline: free-text question in,
// formatted answer text out. Both callers (the interactive HTTP handler and
// the tool contract) share this one implementation so the two surfaces cannot
// drift apart.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/client"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/extract"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/observability"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/respond"
)

// QueryService resolves natural-language weather questions. Stateless; any
// number of queries may run concurrently, each fully independent.
type QueryService struct {
	geocoder  client.GeocodeAPI
	forecasts client.ForecastAPI
}

// NewQueryService creates a QueryService over the given provider clients.
func NewQueryService(geocoder client.GeocodeAPI, forecasts client.ForecastAPI) *QueryService {
	return &QueryService{
		geocoder:  geocoder,
		forecasts: forecasts,
	}
}

// loggerFromContext extracts a zap.Logger from request context if present.
// Returns nil if logger is not found or context is invalid.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// Answer runs the full pipeline: extraction, geocoding with fallback, forecast
// retrieval, synthesis. Every failure is converted into legible answer text;
// the returned string is always displayable and this method never errors.
func (s *QueryService) Answer(ctx context.Context, query string) string {
	observability.QueriesTotal.Inc()
	logger := loggerFromContext(ctx)

	name := extract.Candidate(query)
	if name == "" {
		observability.QueryOutcomesTotal.WithLabelValues("no_place").Inc()
		if logger != nil {
			logger.Debug("no place name extracted", zap.String("query", query))
		}
		return respond.MsgNoPlace
	}

	place, err := s.geocoder.Resolve(ctx, name)
	if err != nil {
		observability.QueryOutcomesTotal.WithLabelValues("place_not_found").Inc()
		if logger != nil {
			logger.Info("geocoding failed", zap.String("candidate", name), zap.Error(err))
		}
		return respond.PlaceNotFound(name)
	}
	observability.RecordPlace(place.DisplayName)

	series, err := s.forecasts.DailyForecast(ctx, place.Latitude, place.Longitude)
	if err != nil {
		observability.QueryOutcomesTotal.WithLabelValues("upstream_error").Inc()
		if logger != nil {
			logger.Warn("forecast fetch failed", zap.String("place", place.DisplayName), zap.Error(err))
		}
		return respond.MsgForecastUnavailable
	}

	observability.QueryOutcomesTotal.WithLabelValues("answered").Inc()
	if logger != nil {
		logger.Debug("query answered",
			zap.String("candidate", name),
			zap.String("place", place.DisplayName),
			zap.Int("forecast_days", len(series)))
	}
	return respond.Forecast(place, series)
}
