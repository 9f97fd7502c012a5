package report

import (
	"github.com/trailsync/emission-engine/internal/batch"
	"github.com/trailsync/emission-engine/internal/model"
)

// BatchSummary renders the totals of a batch run and its top emitters.
func BatchSummary(res *batch.Result, top []model.FlightRecord) string {
	totals := [][2]string{
		{"Processed:", FormatInt(int64(res.Succeeded())) + "/" + FormatInt(int64(res.Rows)) + " flights"},
		{"Skipped:", FormatInt(int64(len(res.Failures)))},
		{"Total CO2:", FormatFloat(res.Totals.CO2Kg/1000, 1) + " tonnes"},
		{"Total Fuel:", FormatFloat(res.Totals.FuelKg/1000, 1) + " tonnes"},
		{"Avg Emission Factor:", FormatFloat(res.AverageEmissionFactor(), 2) + " kg CO2/km"},
	}
	if res.Totals.CostUSD.Valid {
		totals = append(totals, [2]string{"Total Carbon Cost:", money(res.Totals.CostUSD.Decimal, 2) + " (" + res.Market + ")"})
		if avg := res.AverageCostPerFlight(); avg.Valid {
			totals = append(totals, [2]string{"Avg Cost per Flight:", money(avg.Decimal, 2)})
		}
	}

	sections := []section{{"Run " + res.RunID, totals}}
	if len(top) > 0 {
		lines := make([][2]string, 0, len(top))
		for _, r := range top {
			lines = append(lines, [2]string{
				r.Callsign + " (" + r.RecordID + ")",
				FormatFloat(r.Emission.CO2Total, 0) + " kg",
			})
		}
		sections = append(sections, section{"Top Emitters", lines})
	}
	return render("BATCH EMISSION SUMMARY", sections...)
}
