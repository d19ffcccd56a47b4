package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/client"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/config"
	httphandler "github.com/Ratnesh-181998/weather-mcp-a2a/internal/http"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/lifecycle"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/observability"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/service"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	geocoder := client.NewGeocoder(cfg.GeocodingURL, cfg.GeocodeTimeout, cfg.UserAgent)
	forecasts := client.NewForecastClient(cfg.ForecastURL, cfg.ForecastTimeout, cfg.UserAgent)
	queryService := service.NewQueryService(geocoder, forecasts)

	if len(cfg.TrackedPlaces) > 0 {
		observability.SetTrackedPlaces(cfg.TrackedPlaces)
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	handler := httphandler.NewHandler(queryService, logger, "weather-query-service", cfg.QueryMaxLength)

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())
	queryRouter := router.PathPrefix("/query").Subrouter()
	queryRouter.Use(httphandler.RateLimitMiddleware(limiter))
	queryRouter.Use(httphandler.TimeoutMiddleware(cfg.RequestTimeout))
	queryRouter.HandleFunc("", handler.PostQuery).Methods("POST")

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	inFlight := httphandler.InFlightCount()
	logger.Info("waiting for in-flight requests", zap.Int64("count", inFlight))
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
	defer waitCancel()
	if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
