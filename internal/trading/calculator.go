// Package trading prices aviation CO2 under carbon market schemes: per-flight
// cost, annual compliance balance, allowance/credit purchase mix and price
// forecasts.
//
// All monetary values use shopspring/decimal. A Calculator holds only the
// market and price fixed at construction.
package trading

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trailsync/emission-engine/internal/market"
	"github.com/trailsync/emission-engine/internal/model"
)

// DateLayout is the calculation date format on results.
const DateLayout = "2006-01-02"

var kgPerTonne = decimal.NewFromInt(1000)

// Calculator prices emissions for one carbon market.
type Calculator struct {
	market market.Market
	price  decimal.Decimal
	now    func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithCustomPrice overrides the market's reference price. Non-positive
// prices are ignored.
func WithCustomPrice(price decimal.Decimal) Option {
	return func(c *Calculator) {
		if price.IsPositive() {
			c.price = price
		}
	}
}

// WithClock sets the time source used for calculation dates and forecast years.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCalculator creates a calculator for marketID. Unknown identifiers use
// the EU ETS.
func NewCalculator(marketID string, opts ...Option) *Calculator {
	mk := market.Lookup(marketID)
	c := &Calculator{
		market: mk,
		price:  mk.PriceUSD,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Market returns the resolved market.
func (c *Calculator) Market() market.Market { return c.market }

// Price returns the effective price per tonne.
func (c *Calculator) Price() decimal.Decimal { return c.price }

// FlightCarbonCost prices one flight's CO2. Cost per km is zero when the
// distance is zero, and the per-passenger cost is only set when passengers > 0.
func (c *Calculator) FlightCarbonCost(co2Kg, distanceKm float64, passengers int) model.CarbonTradingResult {
	kg := decimal.NewFromFloat(co2Kg)
	tonnes := kg.Div(kgPerTonne)
	cost := tonnes.Mul(c.price)

	perKm := decimal.Zero
	if distanceKm > 0 {
		perKm = cost.Div(decimal.NewFromFloat(distanceKm))
	}

	var perPax decimal.NullDecimal
	if passengers > 0 {
		perPax = decimal.NewNullDecimal(cost.Div(decimal.NewFromInt(int64(passengers))))
	} else {
		passengers = 0
	}

	return model.CarbonTradingResult{
		ID:                     uuid.New().String(),
		Market:                 c.market.ID,
		MarketName:             c.market.Name,
		CalculationDate:        c.now().Format(DateLayout),
		CO2EmissionsKg:         kg,
		CO2EmissionsTonnes:     tonnes,
		CarbonPricePerTonne:    c.price,
		CarbonCostTotal:        cost,
		CarbonCostPerKm:        perKm,
		CarbonCostPerPassenger: perPax,
		NumPassengers:          passengers,
	}
}

// CompareMarkets prices the same flight under each market in ids, in order.
func CompareMarkets(co2Kg, distanceKm float64, passengers int, ids []string, opts ...Option) []model.CarbonTradingResult {
	out := make([]model.CarbonTradingResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewCalculator(id, opts...).FlightCarbonCost(co2Kg, distanceKm, passengers))
	}
	return out
}
