package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trailsync/emission-engine/internal/batch"
	"github.com/trailsync/emission-engine/internal/report"
)

// TopEmitterCount is the number of flights listed in the batch summary.
const TopEmitterCount = 10

type batchFlags struct {
	input  string
	output string
	noCost bool
	top    int
}

func (a *app) newBatchCmd() *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compute emissions for a CSV table of flights",
		Long: `Reads one flight per row with record_id, callsign, icao24, typecode,
latitude_1, longitude_1, latitude_2, longitude_2 and the optional altitude_1,
altitude_2 and avg_ground_speed_ms columns. Rows that cannot be computed are
logged and skipped. Results are written to --output.`,
		Example: `  emissions batch --input flights.csv --output results.csv
  emissions batch --input flights.csv --output results.csv --no-cost`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBatch(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.input, "input", "", "input flights CSV (required)")
	cmd.Flags().StringVar(&f.output, "output", "", "output results CSV (required)")
	cmd.Flags().BoolVar(&f.noCost, "no-cost", false, "omit the carbon cost columns")
	cmd.Flags().IntVar(&f.top, "top", TopEmitterCount, "number of top emitters in the summary")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, f batchFlags) error {
	calc, err := a.emissionCalculator()
	if err != nil {
		return err
	}

	opts := []batch.Option{batch.WithLogger(a.logger)}
	if !f.noCost {
		opts = append(opts, batch.WithPricing(a.pricing()))
	}
	proc := batch.NewProcessor(calc, opts...)

	ctx := cmd.Context()
	res, err := proc.ProcessFile(ctx, f.input, f.output)
	if err != nil {
		return err
	}

	top, err := proc.Store().TopEmitters(ctx, f.top)
	if err != nil {
		return fmt.Errorf("top emitters: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.BatchSummary(res, top))
	return nil
}
