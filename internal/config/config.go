package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	OpenWeatherAPIKey  string `yaml:"openweatherApiKey"`
	OpenWeatherBaseURL string `yaml:"openweatherBaseUrl"`

	// HTTPTimeout bounds each outbound weather request.
	HTTPTimeout time.Duration `yaml:"httpTimeout"`

	RecentLimit     int `yaml:"recentLimit"`
	SuggestMinChars int `yaml:"suggestMinChars"`
	MapZoom         int `yaml:"mapZoom"`

	// RefreshInterval re-runs the lookup of the displayed city (0 = disabled).
	RefreshInterval time.Duration `yaml:"refreshInterval"`

	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`
}

func defaults() *AppConfig {
	return &AppConfig{
		OpenWeatherBaseURL: "https://api.openweathermap.org",
		HTTPTimeout:        10 * time.Second,
		RecentLimit:        5,
		SuggestMinChars:    3,
		MapZoom:            7,
		Port:               "8080",
		LogLevel:           "info",
	}
}

// Load reads configuration from an optional YAML file (CONFIG_PATH) and then
// the environment, which wins. A .env file is loaded first when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.OpenWeatherAPIKey = getenvDefault("OPENWEATHER_API_KEY", cfg.OpenWeatherAPIKey)
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", cfg.OpenWeatherBaseURL)

	timeout, err := getenvDuration("HTTP_TIMEOUT", cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.RecentLimit = getenvInt("RECENT_LIMIT", cfg.RecentLimit)
	cfg.SuggestMinChars = getenvInt("SUGGEST_MIN_CHARS", cfg.SuggestMinChars)
	cfg.MapZoom = getenvInt("MAP_ZOOM", cfg.MapZoom)

	refresh, err := getenvDuration("REFRESH_INTERVAL", cfg.RefreshInterval)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	cfg.Port = getenvDefault("PORT", cfg.Port)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the loaded configuration.
func (c *AppConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.OpenWeatherAPIKey) == "" {
		errs = append(errs, errors.New("OPENWEATHER_API_KEY is required"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT must be positive"))
	}
	if c.RecentLimit <= 0 {
		errs = append(errs, errors.New("RECENT_LIMIT must be positive"))
	}
	if c.SuggestMinChars <= 0 {
		errs = append(errs, errors.New("SUGGEST_MIN_CHARS must be positive"))
	}
	if c.MapZoom < 1 || c.MapZoom > 19 {
		errs = append(errs, errors.New("MAP_ZOOM must be between 1 and 19"))
	}
	if c.RefreshInterval < 0 {
		errs = append(errs, errors.New("REFRESH_INTERVAL must not be negative"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
