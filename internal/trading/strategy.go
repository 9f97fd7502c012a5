package trading

import (
	"github.com/shopspring/decimal"

	"github.com/trailsync/emission-engine/internal/market"
	"github.com/trailsync/emission-engine/internal/model"
)

// SweepAltitudes are the cruise altitudes, in meters, compared by CompareStrategies.
var SweepAltitudes = []int{8000, 9000, 10000, 11000, 12000}

// SweepPassengers is the cabin load assumed by CompareStrategies.
const SweepPassengers = 180

const (
	referenceAltitude   = 10000.0
	altitudeSensitivity = 0.3
)

// AltitudeCO2Factor scales a flight's CO2 for cruising at altitudeM instead
// of the 10 000 m reference.
func AltitudeCO2Factor(altitudeM int) float64 {
	return 1 + (float64(altitudeM)-referenceAltitude)/referenceAltitude*altitudeSensitivity
}

// CompareStrategies prices a flight under every market at every sweep
// altitude, markets outermost in catalogue order.
func CompareStrategies(co2TotalKg, distanceKm float64, opts ...Option) []model.StrategyOption {
	ids := market.IDs()
	out := make([]model.StrategyOption, 0, len(ids)*len(SweepAltitudes))
	for _, id := range ids {
		calc := NewCalculator(id, opts...)
		for _, alt := range SweepAltitudes {
			adjusted := co2TotalKg * AltitudeCO2Factor(alt)
			res := calc.FlightCarbonCost(adjusted, distanceKm, SweepPassengers)
			out = append(out, model.StrategyOption{
				Market:     id,
				MarketName: res.MarketName,
				AltitudeM:  alt,
				CO2Kg:      decimal.NewFromFloat(adjusted).Round(1),
				CarbonCost: res.CarbonCostTotal.Round(2),
				CostPerKm:  res.CarbonCostPerKm.Round(4),
			})
		}
	}
	return out
}

// Cheapest returns the option with the lowest carbon cost; the first wins ties.
func Cheapest(options []model.StrategyOption) (model.StrategyOption, bool) {
	if len(options) == 0 {
		return model.StrategyOption{}, false
	}
	best := options[0]
	for _, o := range options[1:] {
		if o.CarbonCost.LessThan(best.CarbonCost) {
			best = o
		}
	}
	return best, true
}
