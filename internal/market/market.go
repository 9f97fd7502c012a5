// Package market is the static catalogue of carbon markets and their
// reference prices.
package market

import "github.com/shopspring/decimal"

// Supported market identifiers.
const (
	EUETS      = "EU_ETS"
	CORSIA     = "CORSIA"
	China      = "CHINA"
	UKETS      = "UK_ETS"
	California = "CALIFORNIA"
)

// Default is the market used when an identifier is not recognised.
const Default = EUETS

// Market is one carbon pricing scheme. PriceUSD is the reference price per
// tonne of CO2.
type Market struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PriceUSD   decimal.Decimal `json:"price_usd"`
	Currency   string          `json:"currency"`
	Coverage   string          `json:"coverage"`
	Volatility float64         `json:"volatility"`
}

var catalogue = []Market{
	{EUETS, "EU Emissions Trading System", decimal.NewFromInt(95), "EUR", "EU aviation", 0.25},
	{CORSIA, "ICAO Carbon Offsetting Scheme", decimal.NewFromInt(20), "USD", "International routes", 0.15},
	{China, "China National Carbon Market", decimal.NewFromInt(11), "CNY", "China domestic routes", 0.20},
	{UKETS, "UK Emissions Trading Scheme", decimal.NewFromInt(55), "GBP", "UK aviation", 0.22},
	{California, "California Cap-and-Trade", decimal.NewFromInt(32), "USD", "California aviation", 0.18},
}

var byID = func() map[string]Market {
	m := make(map[string]Market, len(catalogue))
	for _, mk := range catalogue {
		m[mk.ID] = mk
	}
	return m
}()

// Lookup returns the market for id, falling back to EU_ETS.
func Lookup(id string) Market {
	if mk, ok := byID[id]; ok {
		return mk
	}
	return byID[Default]
}

// Known reports whether id is a catalogued market.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// Price returns the reference price for id, falling back to EU_ETS.
func Price(id string) decimal.Decimal {
	return Lookup(id).PriceUSD
}

// IDs returns the supported identifiers in catalogue order.
func IDs() []string {
	ids := make([]string, len(catalogue))
	for i, mk := range catalogue {
		ids[i] = mk.ID
	}
	return ids
}

// All returns a copy of the catalogue.
func All() []Market {
	out := make([]Market, len(catalogue))
	copy(out, catalogue)
	return out
}
