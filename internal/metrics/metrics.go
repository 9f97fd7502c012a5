// Package metrics provides Prometheus instrumentation for emission and
// carbon cost calculations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FlightsProcessed counts flights by outcome ("ok" or "failed").
	FlightsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emission_flights_processed_total",
		Help: "Flights processed, partitioned by outcome",
	}, []string{"status"})

	// CO2Kg accumulates computed CO2 mass by component ("direct" or "contrail").
	CO2Kg = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emission_co2_kg_total",
		Help: "Cumulative CO2 and CO2-equivalent mass in kg",
	}, []string{"component"})

	// FuelKg accumulates estimated fuel burn.
	FuelKg = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emission_fuel_kg_total",
		Help: "Cumulative estimated fuel burn in kg",
	})

	// CarbonCostUSD accumulates priced carbon cost per market.
	CarbonCostUSD = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emission_carbon_cost_usd_total",
		Help: "Cumulative carbon cost in USD",
	}, []string{"market"})

	// BatchDuration tracks wall time of whole batch runs.
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "emission_batch_duration_seconds",
		Help:    "Batch processing duration in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})

	// BatchRows tracks the number of input rows in the last batch.
	BatchRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "emission_batch_rows",
		Help: "Input rows in the most recent batch",
	})
)

// ObserveFlight records one successfully computed flight.
func ObserveFlight(fuelKg, directKg, contrailKg float64) {
	FlightsProcessed.WithLabelValues("ok").Inc()
	FuelKg.Add(fuelKg)
	CO2Kg.WithLabelValues("direct").Add(directKg)
	CO2Kg.WithLabelValues("contrail").Add(contrailKg)
}

// ObserveFailure records a flight that could not be computed.
func ObserveFailure() {
	FlightsProcessed.WithLabelValues("failed").Inc()
}

// ObserveCost records a priced carbon cost for market.
func ObserveCost(market string, usd float64) {
	if usd > 0 {
		CarbonCostUSD.WithLabelValues(market).Add(usd)
	}
}

// ObserveBatch records the size and duration of a finished batch.
func ObserveBatch(rows int, started time.Time) {
	BatchRows.Set(float64(rows))
	BatchDuration.Observe(time.Since(started).Seconds())
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// format to path.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
