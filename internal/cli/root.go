// Package cli wires the emission engine into the emissions command line tool.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/trailsync/emission-engine/internal/config"
	"github.com/trailsync/emission-engine/internal/emission"
	"github.com/trailsync/emission-engine/internal/logging"
	"github.com/trailsync/emission-engine/internal/market"
	"github.com/trailsync/emission-engine/internal/metrics"
	"github.com/trailsync/emission-engine/internal/trading"
)

// app carries the state resolved by the root command before any subcommand runs.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
	now      func() time.Time
}

// NewRootCmd creates the root command reading the process environment.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit environment
// lookup so tests can inject EMISSION_* variables.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	a := &app{now: time.Now, closeLog: func() error { return nil }}

	var (
		cfgPath     string
		marketID    string
		carbonPrice float64
		logLevel    string
		logFile     string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:           "emissions",
		Short:         "Aviation emission and carbon cost calculator",
		Long:          "Compute direct and contrail CO2 for flights and price them under carbon trading schemes.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath, lookupEnv)
			if err != nil {
				return err
			}

			// Flags override the environment and the config file.
			flags := cmd.Flags()
			if flags.Changed("market") {
				cfg.Market = strings.ToUpper(strings.TrimSpace(marketID))
			}
			if flags.Changed("carbon-price") {
				cfg.CarbonPrice = carbonPrice
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = strings.ToLower(logLevel)
			}
			if flags.Changed("log-file") {
				cfg.Log.File = logFile
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.File, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.cfg, a.logger, a.closeLog = cfg, logger, closeLog
			if !market.Known(cfg.Market) {
				logger.Warn("unknown carbon market, using default", "market", cfg.Market, "default", market.Default)
			}
			logger.Debug("configuration loaded", "market", cfg.Market, "config", cfgPath)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			defer a.closeLog()
			if a.cfg.MetricsFile == "" {
				return nil
			}
			if err := metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
			a.logger.Debug("metrics written", "path", a.cfg.MetricsFile)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	pf.StringVar(&marketID, "market", "", "carbon market: EU_ETS, CORSIA, CHINA, UK_ETS or CALIFORNIA")
	pf.Float64Var(&carbonPrice, "carbon-price", 0, "custom carbon price in USD per tonne (0 = market price)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	cmd.AddCommand(
		a.newFlightCmd(),
		a.newBatchCmd(),
		a.newCostCmd(),
		a.newComplianceCmd(),
		a.newOptimizeCmd(),
		a.newForecastCmd(),
		a.newStrategiesCmd(),
		newMarketsCmd(),
		newAircraftCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Emissions and carbon cost of one tracked flight
  emissions flight --track track.csv --mask contrails.csv

  # Process a day of flights under CORSIA
  emissions batch --input flights.csv --output results.csv --market CORSIA

  # Annual compliance position for 30 000 t with 20 000 t free allowance
  emissions compliance --emissions 30000 --allowance 20000

  # Five year cost projection
  emissions forecast --emissions 1000`

func (a *app) emissionCalculator() (*emission.Calculator, error) {
	return emission.NewCalculator(a.cfg.PixelSizeKm, a.cfg.ContrailHours)
}

func (a *app) pricing() *trading.Calculator {
	return trading.NewCalculator(a.cfg.Market, a.tradingOptions()...)
}

func (a *app) tradingOptions() []trading.Option {
	return []trading.Option{
		trading.WithCustomPrice(decimal.NewFromFloat(a.cfg.CarbonPrice)),
		trading.WithClock(a.now),
	}
}
