// Package config loads engine settings from defaults, an optional YAML file
// and EMISSION_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trailsync/emission-engine/internal/market"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variable names.
const (
	EnvConfigFile    = "EMISSION_CONFIG"
	EnvMarket        = "EMISSION_MARKET"
	EnvCarbonPrice   = "EMISSION_CARBON_PRICE"
	EnvPassengers    = "EMISSION_PASSENGERS"
	EnvPixelSizeKm   = "EMISSION_PIXEL_SIZE_KM"
	EnvContrailHours = "EMISSION_CONTRAIL_HOURS"
	EnvLogLevel      = "EMISSION_LOG_LEVEL"
	EnvLogFile       = "EMISSION_LOG_FILE"
	EnvMetricsFile   = "EMISSION_METRICS_FILE"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty logs to stderr
}

// Config is the full engine configuration.
type Config struct {
	// Market is the carbon market identifier. Unknown values fall back to EU_ETS.
	Market string `yaml:"market"`
	// CarbonPrice overrides the market reference price when positive.
	CarbonPrice float64 `yaml:"carbon_price"`
	// Passengers is the default cabin load for per-passenger costs; 0 disables it.
	Passengers int `yaml:"passengers"`

	PixelSizeKm   float64 `yaml:"pixel_size_km"`
	ContrailHours float64 `yaml:"contrail_hours"`

	CreditLimitRatio float64 `yaml:"credit_limit_ratio"`
	GrowthRate       float64 `yaml:"growth_rate"`
	ForecastYears    int     `yaml:"forecast_years"`

	Log         LogConfig `yaml:"log"`
	MetricsFile string    `yaml:"metrics_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Market:           market.Default,
		PixelSizeKm:      2.0,
		ContrailHours:    3.0,
		CreditLimitRatio: 0.15,
		GrowthRate:       0.08,
		ForecastYears:    5,
		Log:              LogConfig{Level: "info"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// empty) and environment overrides read through lookupEnv.
func Load(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if path == "" {
		path, _ = lookupEnv(EnvConfigFile)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvMarket); ok && v != "" {
		c.Market = strings.ToUpper(strings.TrimSpace(v))
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Log.File = v
	}
	if v, ok := lookupEnv(EnvMetricsFile); ok {
		c.MetricsFile = v
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{EnvCarbonPrice, &c.CarbonPrice},
		{EnvPixelSizeKm, &c.PixelSizeKm},
		{EnvContrailHours, &c.ContrailHours},
	}
	for _, f := range floats {
		v, ok := lookupEnv(f.env)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, f.env, v, err)
		}
		*f.dst = n
	}

	if v, ok := lookupEnv(EnvPassengers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvPassengers, v, err)
		}
		c.Passengers = n
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.CarbonPrice < 0:
		return fmt.Errorf("%w: carbon_price must be >= 0, got %v", ErrInvalidConfig, c.CarbonPrice)
	case c.Passengers < 0:
		return fmt.Errorf("%w: passengers must be >= 0, got %d", ErrInvalidConfig, c.Passengers)
	case c.PixelSizeKm <= 0:
		return fmt.Errorf("%w: pixel_size_km must be > 0, got %v", ErrInvalidConfig, c.PixelSizeKm)
	case c.ContrailHours <= 0:
		return fmt.Errorf("%w: contrail_hours must be > 0, got %v", ErrInvalidConfig, c.ContrailHours)
	case c.CreditLimitRatio < 0 || c.CreditLimitRatio > 1:
		return fmt.Errorf("%w: credit_limit_ratio must be in [0,1], got %v", ErrInvalidConfig, c.CreditLimitRatio)
	case c.ForecastYears < 0:
		return fmt.Errorf("%w: forecast_years must be >= 0, got %d", ErrInvalidConfig, c.ForecastYears)
	case !validLevels[c.Log.Level]:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
