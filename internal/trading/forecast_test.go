package trading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailsync/emission-engine/internal/market"
)

func TestForecastCarbonCost_Values(t *testing.T) {
	c := NewCalculator(market.EUETS, WithClock(fixedClock))

	points := c.ForecastCarbonCost(d(1000), 2, DefaultGrowthRate)
	require.Len(t, points, 2)

	assert.Equal(t, 2026, points[0].Year)
	assert.True(t, points[0].CarbonPrice.Equal(d(102.6)), "price %s", points[0].CarbonPrice)
	assert.True(t, points[0].AnnualCost.Equal(d(102600)))
	assert.True(t, points[0].CostIncreasePercent.Equal(d(8)))

	assert.Equal(t, 2027, points[1].Year)
	assert.True(t, points[1].CarbonPrice.Equal(d(110.81)), "price %s", points[1].CarbonPrice)
	assert.True(t, points[1].AnnualCost.Equal(d(110808)), "cost %s", points[1].AnnualCost)
	assert.True(t, points[1].CostIncreasePercent.Equal(d(16.6)), "pct %s", points[1].CostIncreasePercent)
}

func TestForecastCarbonCost_Monotonic(t *testing.T) {
	c := NewCalculator(market.UKETS)

	points := c.ForecastCarbonCost(d(500000), 10, d(0.03))
	require.Len(t, points, 10)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].CarbonPrice.GreaterThan(points[i-1].CarbonPrice), "year %d price", points[i].Year)
		assert.True(t, points[i].AnnualCost.GreaterThan(points[i-1].AnnualCost), "year %d cost", points[i].Year)
		assert.Equal(t, points[i-1].Year+1, points[i].Year)
	}
}

func TestForecastCarbonCost_Degenerate(t *testing.T) {
	c := NewCalculator(market.EUETS)
	assert.Empty(t, c.ForecastCarbonCost(d(1000), 0, DefaultGrowthRate))
	assert.Empty(t, c.ForecastCarbonCost(d(1000), -1, DefaultGrowthRate))

	zero := c.ForecastCarbonCost(d(0), 3, DefaultGrowthRate)
	require.Len(t, zero, 3)
	for _, p := range zero {
		assert.True(t, p.AnnualCost.IsZero())
		assert.True(t, p.CostIncreasePercent.IsZero())
	}
}
