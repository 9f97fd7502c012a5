package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trailsync/emission-engine/internal/emission"
	"github.com/trailsync/emission-engine/internal/metrics"
	"github.com/trailsync/emission-engine/internal/model"
	"github.com/trailsync/emission-engine/internal/report"
)

type flightFlags struct {
	track      string
	mask       string
	aircraft   string
	icao24     string
	passengers int
	noCost     bool
}

func (a *app) newFlightCmd() *cobra.Command {
	var f flightFlags
	cmd := &cobra.Command{
		Use:   "flight",
		Short: "Compute emissions and carbon cost of one flight",
		Long: `Reads a flight track CSV with latitude, longitude, baro_altitude, velocity
and an optional callsign column. An optional contrail mask CSV adds the
contrail CO2 equivalent.`,
		Example: `  emissions flight --track track.csv
  emissions flight --track track.csv --mask mask.csv --aircraft B738 --passengers 180`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFlight(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.track, "track", "", "flight track CSV (required)")
	cmd.Flags().StringVar(&f.mask, "mask", "", "contrail mask CSV, one grid row per line")
	cmd.Flags().StringVar(&f.aircraft, "aircraft", "", "aircraft type (inferred from callsign when empty)")
	cmd.Flags().StringVar(&f.icao24, "icao24", "", "ICAO 24-bit address shown in the report")
	cmd.Flags().IntVar(&f.passengers, "passengers", 0, "passengers for the per-passenger cost (default from config)")
	cmd.Flags().BoolVar(&f.noCost, "no-cost", false, "skip the carbon cost report")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

func (a *app) runFlight(cmd *cobra.Command, f flightFlags) error {
	track, err := readTrack(f.track)
	if err != nil {
		return err
	}

	var mask *emission.ContrailMask
	if f.mask != "" {
		if mask, err = readMask(f.mask); err != nil {
			return err
		}
	}

	calc, err := a.emissionCalculator()
	if err != nil {
		return err
	}
	res := calc.FlightEmissions(track, mask, f.aircraft)
	metrics.ObserveFlight(res.FuelBurn, res.CO2Direct, res.CO2Contrail)
	a.logger.Info("flight computed",
		"callsign", track.Callsign(),
		"aircraft_type", res.AircraftType,
		"distance_km", res.FlightDistance,
		"co2_total_kg", res.CO2Total,
	)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.FlightReport(res, report.FlightInfo{
		Callsign:     track.Callsign(),
		ICAO24:       f.icao24,
		AircraftType: res.AircraftType,
		Mask:         mask,
	}))
	if f.noCost {
		return nil
	}

	passengers := a.cfg.Passengers
	if cmd.Flags().Changed("passengers") {
		passengers = f.passengers
	}
	cost := a.pricing().FlightCarbonCost(res.CO2Total, res.FlightDistance, passengers)
	metrics.ObserveCost(cost.Market, cost.CarbonCostTotal.InexactFloat64())
	fmt.Fprintln(out, report.FlightCarbonReport(cost))
	return nil
}

func readTrack(path string) (model.FlightTrack, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.FlightTrack{}, fmt.Errorf("open track: %w", err)
	}
	defer f.Close()
	return emission.ReadTrackCSV(f)
}

func readMask(path string) (*emission.ContrailMask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mask: %w", err)
	}
	defer f.Close()
	return emission.ReadMaskCSV(f)
}
