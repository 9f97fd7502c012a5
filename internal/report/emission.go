// Package report renders computed emission and carbon cost records as
// fixed-width text. Reports hold no logic of their own.
package report

import (
	"fmt"

	"github.com/trailsync/emission-engine/internal/emission"
	"github.com/trailsync/emission-engine/internal/model"
)

// FlightInfo identifies the flight in a FlightReport.
type FlightInfo struct {
	Callsign     string
	ICAO24       string
	AircraftType string
	Mask         *emission.ContrailMask // optional
}

// FlightReport renders the emission breakdown of one flight.
func FlightReport(res model.EmissionResult, info FlightInfo) string {
	contrail := [][2]string{
		{"Coverage Area:", FormatFloat(res.ContrailCoverage, 1) + " km²"},
		{"Intensity:", FormatFloat(res.ContrailIntensity*100, 2) + "%"},
	}
	if m := info.Mask; m != nil {
		contrail = append(contrail,
			[2]string{"Contrail Cells:", FormatInt(int64(m.PresentCells())) + "/" + FormatInt(int64(m.Rows()*m.Cols()))},
			[2]string{"Coverage of tile:", FormatFloat(m.CoveragePercent(), 1) + "%"},
		)
	}

	return render("AVIATION EMISSION REPORT",
		section{"Flight Information", [][2]string{
			{"Callsign:", orNA(info.Callsign)},
			{"ICAO24:", orNA(info.ICAO24)},
			{"Aircraft Type:", orNA(info.AircraftType)},
			{"Distance:", FormatFloat(res.FlightDistance, 1) + " km"},
		}},
		section{"Fuel Consumption", [][2]string{
			{"Total Fuel:", FormatFloat(res.FuelBurn, 1) + " kg"},
		}},
		section{"CO2 Emissions", [][2]string{
			{"Direct CO2:", FormatFloat(res.CO2Direct, 1) + " kg"},
			{"Contrail CO2eq:", FormatFloat(res.CO2Contrail, 1) + " kg"},
			{"TOTAL CO2eq:", FormatFloat(res.CO2Total, 1) + " kg"},
			{"Emission Factor:", FormatFloat(res.EmissionFactor, 2) + " kg CO2/km"},
		}},
		section{"Contrail Impact", contrail},
		section{"Environmental Equivalent", [][2]string{
			{"Trees to offset (annual):", FormatInt(TreesToOffset(res.CO2Total))},
			{"Car miles equivalent:", FormatInt(CarMiles(res.CO2Total)) + " miles"},
		}},
	)
}

// FleetSummary renders totals, shares and per-flight averages for a set of
// flights operated by airline.
func FleetSummary(results []model.EmissionResult, airline string) string {
	var total, direct, contrail, fuel, distance float64
	for _, r := range results {
		total += r.CO2Total
		direct += r.CO2Direct
		contrail += r.CO2Contrail
		fuel += r.FuelBurn
		distance += r.FlightDistance
	}
	n := float64(len(results))

	share := func(part float64) string {
		if total == 0 {
			return "0.0%"
		}
		return FormatFloat(part/total*100, 1) + "%"
	}
	perFlight := func(v float64) float64 {
		if n == 0 {
			return 0
		}
		return v / n
	}
	avgEF := 0.0
	if distance > 0 {
		avgEF = total / distance
	}

	if airline == "" {
		airline = "Unknown Airline"
	}

	return render("FLEET EMISSION SUMMARY REPORT",
		section{"", [][2]string{
			{"Airline:", airline},
			{"Flights:", FormatInt(int64(len(results)))},
		}},
		section{"Total Emissions", [][2]string{
			{"Direct CO2:", fmt.Sprintf("%s kg (%s)", FormatFloat(direct, 0), share(direct))},
			{"Contrail CO2eq:", fmt.Sprintf("%s kg (%s)", FormatFloat(contrail, 0), share(contrail))},
			{"TOTAL CO2eq:", FormatFloat(total, 0) + " kg"},
			{"Total Fuel:", FormatFloat(fuel, 0) + " kg"},
			{"Total Distance:", FormatFloat(distance, 0) + " km"},
			{"Avg Efficiency:", FormatFloat(avgEF, 2) + " kg CO2/km"},
		}},
		section{"Per Flight Average", [][2]string{
			{"CO2eq:", FormatFloat(perFlight(total), 0) + " kg/flight"},
			{"Fuel:", FormatFloat(perFlight(fuel), 0) + " kg/flight"},
			{"Distance:", FormatFloat(perFlight(distance), 0) + " km/flight"},
		}},
		section{"Environmental Impact", [][2]string{
			{"Annual tree offset needed:", FormatInt(TreesToOffset(total))},
			{"Car miles equivalent:", FormatInt(CarMiles(total)) + " miles"},
			{"CO2 in tonnes:", FormatFloat(total/1000, 1) + " t"},
		}},
	)
}
