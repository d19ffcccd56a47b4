package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds service configuration loaded from YAML and env.
type Config struct {
	ServerPort     string
	ToolServerPort string

	AlertsBaseURL string
	GeocodingURL  string
	ForecastURL   string
	UserAgent     string

	// Alert and geocode lookups use a short bound; forecast payloads are
	// larger and get a longer one.
	AlertTimeout    time.Duration
	GeocodeTimeout  time.Duration
	ForecastTimeout time.Duration

	RequestTimeout time.Duration
	QueryMaxLength int
	RateLimitRPS   int
	RateLimitBurst int

	ShutdownTimeout               time.Duration
	ShutdownInFlightTimeout       time.Duration
	ShutdownInFlightCheckInterval time.Duration

	TrackedPlaces []string
}

type fileConfig struct {
	Server struct {
		Port      string `yaml:"port"`
		ToolsPort string `yaml:"tools_port"`
	} `yaml:"server"`

	Providers struct {
		AlertsBaseURL   string `yaml:"alerts_base_url"`
		GeocodingURL    string `yaml:"geocoding_url"`
		ForecastURL     string `yaml:"forecast_url"`
		UserAgent       string `yaml:"user_agent"`
		AlertTimeout    string `yaml:"alert_timeout"`
		GeocodeTimeout  string `yaml:"geocode_timeout"`
		ForecastTimeout string `yaml:"forecast_timeout"`
	} `yaml:"providers"`

	Request struct {
		Timeout        string `yaml:"timeout"`
		QueryMaxLength int    `yaml:"query_max_length"`
	} `yaml:"request"`

	Reliability struct {
		RateLimitRPS   int `yaml:"rate_limit_rps"`
		RateLimitBurst int `yaml:"rate_limit_burst"`
	} `yaml:"reliability"`

	Shutdown struct {
		Timeout               string `yaml:"timeout"`
		InFlightTimeout       string `yaml:"in_flight_timeout"`
		InFlightCheckInterval string `yaml:"in_flight_check_interval"`
	} `yaml:"shutdown"`

	Metrics struct {
		TrackedPlaces []string `yaml:"tracked_places"`
	} `yaml:"metrics"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev), with a
// .env file loaded first for local development. A missing config file is not
// an error; the fixed provider endpoints and defaults apply. Call from
// project root.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	var fc fileConfig
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.ServerPort = strings.TrimSpace(os.Getenv("SERVER_PORT"))
	if cfg.ServerPort == "" {
		cfg.ServerPort = fc.Server.Port
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	cfg.ToolServerPort = strings.TrimSpace(os.Getenv("TOOLS_PORT"))
	if cfg.ToolServerPort == "" {
		cfg.ToolServerPort = fc.Server.ToolsPort
	}
	if cfg.ToolServerPort == "" {
		cfg.ToolServerPort = "8081"
	}

	cfg.AlertsBaseURL = fc.Providers.AlertsBaseURL
	cfg.GeocodingURL = fc.Providers.GeocodingURL
	cfg.ForecastURL = fc.Providers.ForecastURL
	cfg.UserAgent = fc.Providers.UserAgent

	cfg.AlertTimeout = parseDuration(fc.Providers.AlertTimeout, 10*time.Second)
	cfg.GeocodeTimeout = parseDuration(fc.Providers.GeocodeTimeout, 10*time.Second)
	cfg.ForecastTimeout = parseDuration(fc.Providers.ForecastTimeout, 30*time.Second)

	cfg.RequestTimeout = parseDuration(fc.Request.Timeout, 45*time.Second)
	cfg.QueryMaxLength = fc.Request.QueryMaxLength
	if cfg.QueryMaxLength <= 0 {
		cfg.QueryMaxLength = 500
	}

	cfg.RateLimitRPS = fc.Reliability.RateLimitRPS
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 100
	}
	cfg.RateLimitBurst = fc.Reliability.RateLimitBurst
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 250
	}

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)
	cfg.ShutdownInFlightTimeout = parseDuration(fc.Shutdown.InFlightTimeout, 10*time.Second)
	cfg.ShutdownInFlightCheckInterval = parseDuration(fc.Shutdown.InFlightCheckInterval, 100*time.Millisecond)

	cfg.TrackedPlaces = fc.Metrics.TrackedPlaces

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDuration parses a duration string and returns defaultVal if parsing
// fails or the result is <= 0.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// validate performs post-load validation. The request timeout must cover a
// full geocode-then-forecast round trip or the handler deadline would fire
// first; over-tight values are adjusted rather than rejected.
func validate(cfg *Config) error {
	if cfg.AlertTimeout <= 0 || cfg.GeocodeTimeout <= 0 || cfg.ForecastTimeout <= 0 {
		return fmt.Errorf("provider timeouts must be positive")
	}
	longest := cfg.GeocodeTimeout + cfg.ForecastTimeout
	if cfg.RequestTimeout <= longest {
		cfg.RequestTimeout = longest + time.Second
	}
	return nil
}
