package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trailsync/emission-engine/internal/aircraft"
	"github.com/trailsync/emission-engine/internal/market"
	"github.com/trailsync/emission-engine/internal/report"
)

func newMarketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List the supported carbon markets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), report.MarketsTable(market.All()))
			return nil
		},
	}
}

func newAircraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aircraft [TYPE...]",
		Short: "Compare emission factors of aircraft types",
		Long:  "Without arguments every known aircraft type is listed. Unknown types resolve to the closest match or the default profile.",
		Example: `  emissions aircraft
  emissions aircraft A320 B738 B77W`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = aircraft.Types()
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.AircraftTable(aircraft.Compare(args)))
			return nil
		},
	}
}
