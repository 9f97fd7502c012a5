package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/trailsync/emission-engine/internal/market"
	"github.com/trailsync/emission-engine/internal/report"
	"github.com/trailsync/emission-engine/internal/trading"
)

var errNegative = errors.New("value must not be negative")

func nonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("--%s: %w", name, errNegative)
	}
	return nil
}

func (a *app) newCostCmd() *cobra.Command {
	var (
		co2Kg      float64
		distanceKm float64
		passengers int
		compare    []string
	)
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Price a flight's CO2 under a carbon market",
		Example: `  emissions cost --co2-kg 15000 --distance-km 2500 --passengers 180
  emissions cost --co2-kg 15000 --distance-km 2500 --compare all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := errors.Join(nonNegative("co2-kg", co2Kg), nonNegative("distance-km", distanceKm)); err != nil {
				return err
			}
			if !cmd.Flags().Changed("passengers") {
				passengers = a.cfg.Passengers
			}
			out := cmd.OutOrStdout()

			if len(compare) > 0 {
				ids := compareIDs(compare)
				results := trading.CompareMarkets(co2Kg, distanceKm, passengers, ids, trading.WithClock(a.now))
				fmt.Fprintln(out, report.MarketComparison(results))
				return nil
			}

			res := a.pricing().FlightCarbonCost(co2Kg, distanceKm, passengers)
			fmt.Fprintln(out, report.FlightCarbonReport(res))
			return nil
		},
	}

	cmd.Flags().Float64Var(&co2Kg, "co2-kg", 0, "flight CO2 in kg (required)")
	cmd.Flags().Float64Var(&distanceKm, "distance-km", 0, "flight distance in km")
	cmd.Flags().IntVar(&passengers, "passengers", 0, "passengers for the per-passenger cost (default from config)")
	cmd.Flags().StringSliceVar(&compare, "compare", nil, "compare markets (comma separated, or 'all')")
	_ = cmd.MarkFlagRequired("co2-kg")

	return cmd
}

// compareIDs expands "all" and normalizes market identifiers.
func compareIDs(in []string) []string {
	ids := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "ALL" {
			return market.IDs()
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (a *app) newComplianceCmd() *cobra.Command {
	var emissions, allowance, credits float64
	cmd := &cobra.Command{
		Use:     "compliance",
		Short:   "Annual compliance position of an operator",
		Example: `  emissions compliance --emissions 30000 --allowance 20000 --credits 1000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := errors.Join(
				nonNegative("emissions", emissions),
				nonNegative("allowance", allowance),
				nonNegative("credits", credits),
			); err != nil {
				return err
			}
			res := a.pricing().AnnualComplianceCost(
				decimal.NewFromFloat(emissions),
				decimal.NewFromFloat(allowance),
				decimal.NewFromFloat(credits),
			)
			a.logger.Info("compliance computed", "market", res.Market, "deficit_t", res.EmissionDeficitTonnes.String())
			fmt.Fprintln(cmd.OutOrStdout(), report.ComplianceReport(res))
			return nil
		},
	}

	cmd.Flags().Float64Var(&emissions, "emissions", 0, "annual emissions in tonnes CO2 (required)")
	cmd.Flags().Float64Var(&allowance, "allowance", 0, "free allowance in tonnes")
	cmd.Flags().Float64Var(&credits, "credits", 0, "owned credits in tonnes")
	_ = cmd.MarkFlagRequired("emissions")

	return cmd
}

func (a *app) newOptimizeCmd() *cobra.Command {
	var deficit, allowancePrice, creditPrice, creditLimit float64
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Cheapest mix of allowances and offset credits for a deficit",
		Example: `  emissions optimize --deficit 30000
  emissions optimize --deficit 30000 --allowance-price 95 --credit-price 20 --credit-limit 0.15`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			allowance := a.pricing().Price()
			if flags.Changed("allowance-price") {
				allowance = decimal.NewFromFloat(allowancePrice)
			}
			ratio := a.cfg.CreditLimitRatio
			if flags.Changed("credit-limit") {
				ratio = creditLimit
			}
			if err := errors.Join(
				nonNegative("deficit", deficit),
				nonNegative("credit-price", creditPrice),
				nonNegative("allowance-price", allowance.InexactFloat64()),
			); err != nil {
				return err
			}

			s := trading.OptimizePurchaseStrategy(
				decimal.NewFromFloat(deficit),
				allowance,
				decimal.NewFromFloat(creditPrice),
				decimal.NewFromFloat(ratio),
			)
			fmt.Fprintln(cmd.OutOrStdout(), report.PurchaseStrategyReport(s))
			return nil
		},
	}

	cmd.Flags().Float64Var(&deficit, "deficit", 0, "deficit to cover in tonnes (required)")
	cmd.Flags().Float64Var(&allowancePrice, "allowance-price", 0, "allowance price in USD per tonne (default market price)")
	cmd.Flags().Float64Var(&creditPrice, "credit-price", market.Price(market.CORSIA).InexactFloat64(), "offset credit price in USD per tonne")
	cmd.Flags().Float64Var(&creditLimit, "credit-limit", 0, "maximum share of the deficit covered by credits (default from config)")
	_ = cmd.MarkFlagRequired("deficit")

	return cmd
}

func (a *app) newForecastCmd() *cobra.Command {
	var (
		emissions float64
		years     int
		growth    float64
	)
	cmd := &cobra.Command{
		Use:     "forecast",
		Short:   "Project annual carbon cost under compounding price growth",
		Example: `  emissions forecast --emissions 1000 --years 10 --growth 0.05`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := nonNegative("emissions", emissions); err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("years") {
				years = a.cfg.ForecastYears
			}
			if !flags.Changed("growth") {
				growth = a.cfg.GrowthRate
			}

			points := a.pricing().ForecastCarbonCost(decimal.NewFromFloat(emissions), years, decimal.NewFromFloat(growth))
			if len(points) == 0 {
				a.logger.Warn("empty forecast", "years", years)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.ForecastTable(points))
			return nil
		},
	}

	cmd.Flags().Float64Var(&emissions, "emissions", 0, "annual emissions in tonnes CO2 (required)")
	cmd.Flags().IntVar(&years, "years", trading.DefaultForecastYears, "years to project")
	cmd.Flags().Float64Var(&growth, "growth", trading.DefaultGrowthRate.InexactFloat64(), "annual carbon price growth rate")
	_ = cmd.MarkFlagRequired("emissions")

	return cmd
}

func (a *app) newStrategiesCmd() *cobra.Command {
	var co2Kg, distanceKm float64
	cmd := &cobra.Command{
		Use:     "strategies",
		Short:   "Compare carbon cost across markets and cruise altitudes",
		Example: `  emissions strategies --co2-kg 10000 --distance-km 1000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := errors.Join(nonNegative("co2-kg", co2Kg), nonNegative("distance-km", distanceKm)); err != nil {
				return err
			}
			options := trading.CompareStrategies(co2Kg, distanceKm, trading.WithClock(a.now))
			if best, ok := trading.Cheapest(options); ok {
				a.logger.Info("cheapest strategy", "market", best.Market, "altitude_m", best.AltitudeM, "cost", best.CarbonCost.String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.StrategyTable(options))
			return nil
		},
	}

	cmd.Flags().Float64Var(&co2Kg, "co2-kg", 0, "flight CO2 in kg at the reference altitude (required)")
	cmd.Flags().Float64Var(&distanceKm, "distance-km", 0, "flight distance in km")
	_ = cmd.MarkFlagRequired("co2-kg")

	return cmd
}
