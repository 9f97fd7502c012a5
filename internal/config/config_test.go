package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "EU_ETS", cfg.Market)
	assert.Equal(t, 2.0, cfg.PixelSizeKm)
	assert.Equal(t, 5, cfg.ForecastYears)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emission.yaml")
	body := `
market: CORSIA
carbon_price: 25.5
passengers: 150
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "CORSIA", cfg.Market)
	assert.Equal(t, 25.5, cfg.CarbonPrice)
	assert.Equal(t, 150, cfg.Passengers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3.0, cfg.ContrailHours, "unset keys keep defaults")

	cfg, err = Load(path, env(map[string]string{
		EnvMarket:        " uk_ets ",
		EnvPassengers:    "200",
		EnvContrailHours: "4.5",
		EnvLogLevel:      "WARN",
	}))
	require.NoError(t, err)
	assert.Equal(t, "UK_ETS", cfg.Market)
	assert.Equal(t, 200, cfg.Passengers)
	assert.Equal(t, 4.5, cfg.ContrailHours)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 25.5, cfg.CarbonPrice)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("market: CHINA\n"), 0o600))

	cfg, err := Load("", env(map[string]string{EnvConfigFile: path}))
	require.NoError(t, err)
	assert.Equal(t, "CHINA", cfg.Market)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.Error(t, err)

	_, err = Load("", env(map[string]string{EnvCarbonPrice: "cheap"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load("", env(map[string]string{EnvPassengers: "many"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative price", func(c *Config) { c.CarbonPrice = -1 }},
		{"negative passengers", func(c *Config) { c.Passengers = -1 }},
		{"zero pixel", func(c *Config) { c.PixelSizeKm = 0 }},
		{"zero hours", func(c *Config) { c.ContrailHours = 0 }},
		{"ratio above one", func(c *Config) { c.CreditLimitRatio = 1.5 }},
		{"negative years", func(c *Config) { c.ForecastYears = -2 }},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
