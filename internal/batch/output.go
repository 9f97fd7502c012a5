package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
)

// Output columns. The cost columns are only written for priced batches.
var (
	OutputColumns = []string{
		"record_id", "callsign", "icao24", "typecode",
		"flight_distance_km", "fuel_burn_kg",
		"co2_direct_kg", "co2_contrail_kg", "co2_total_kg",
		"emission_factor_kg_per_km",
	}
	CostColumns = []string{"carbon_cost_usd", "carbon_cost_per_km_usd"}
)

// WriteCSV writes one row per processed flight.
func WriteCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)

	head := append([]string{}, OutputColumns...)
	if res.Priced() {
		head = append(head, CostColumns...)
	}
	if err := cw.Write(head); err != nil {
		return fmt.Errorf("batch: write header: %w", err)
	}

	for _, rec := range res.Records {
		em := rec.Emission
		line := []string{
			rec.RecordID, rec.Callsign, rec.ICAO24, rec.TypeCode,
			ftoa(em.FlightDistance), ftoa(em.FuelBurn),
			ftoa(em.CO2Direct), ftoa(em.CO2Contrail), ftoa(em.CO2Total),
			ftoa(em.EmissionFactor),
		}
		if res.Priced() {
			line = append(line, rec.CarbonCost.Decimal.StringFixed(2), rec.CarbonCostPerKm.Decimal.StringFixed(6))
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("batch: write record %s: %w", rec.RecordID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ProcessFile runs the batch on the CSV at inPath and writes the results
// table to outPath.
func (p *Processor) ProcessFile(ctx context.Context, inPath, outPath string) (*Result, error) {
	in, err := os.Open(inPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, inPath)
	}
	if err != nil {
		return nil, fmt.Errorf("batch: open input: %w", err)
	}
	defer in.Close()

	res, err := p.Process(ctx, in)
	if err != nil {
		return res, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return res, fmt.Errorf("batch: create output: %w", err)
	}
	if err := WriteCSV(out, res); err != nil {
		out.Close()
		return res, err
	}
	if err := out.Close(); err != nil {
		return res, fmt.Errorf("batch: close output: %w", err)
	}
	p.logger.Info("batch results written", "path", outPath, "rows", res.Succeeded())
	return res, nil
}
