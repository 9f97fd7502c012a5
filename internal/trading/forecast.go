package trading

import (
	"github.com/shopspring/decimal"

	"github.com/trailsync/emission-engine/internal/model"
)

// Forecast defaults.
const DefaultForecastYears = 5

var DefaultGrowthRate = decimal.NewFromFloat(0.08)

var hundred = decimal.NewFromInt(100)

// ForecastCarbonCost projects the annual cost of currentEmissions tonnes for
// years 1..years with the price compounding at growthRate per year. Prices
// and costs are rounded to cents and the increase over today's cost to one
// decimal place.
func (c *Calculator) ForecastCarbonCost(currentEmissions decimal.Decimal, years int, growthRate decimal.Decimal) []model.ForecastPoint {
	if years <= 0 {
		return nil
	}

	baseYear := c.now().Year()
	baseCost := currentEmissions.Mul(c.price)
	growth := decimal.NewFromInt(1).Add(growthRate)

	out := make([]model.ForecastPoint, 0, years)
	price := c.price
	for y := 1; y <= years; y++ {
		price = price.Mul(growth)
		cost := currentEmissions.Mul(price)

		increase := decimal.Zero
		if !baseCost.IsZero() {
			increase = cost.Div(baseCost).Sub(decimal.NewFromInt(1)).Mul(hundred)
		}

		out = append(out, model.ForecastPoint{
			Year:                baseYear + y,
			CarbonPrice:         price.Round(2),
			AnnualCost:          cost.Round(2),
			CostIncreasePercent: increase.Round(1),
		})
	}
	return out
}
