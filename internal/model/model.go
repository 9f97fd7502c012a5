// Package model defines the flight, emission and carbon-cost records shared
// across the emission engine.
// All monetary values use shopspring/decimal. Physical quantities produced by
// the emission calculators (kg, km, km²) stay float64.
package model

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/trailsync/emission-engine/internal/geo"
)

// ErrEmptyTrack is returned when a flight track is built without waypoints.
var ErrEmptyTrack = errors.New("model: flight track needs at least one waypoint")

// Waypoint is one ADS-B state vector sample along a flight.
type Waypoint struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	BaroAltitude float64 `json:"baro_altitude"` // meters
	Velocity     float64 `json:"velocity"`      // ground speed, m/s
	Callsign     string  `json:"callsign"`      // may be blank
}

// FlightTrack is an ordered, immutable sequence of waypoints.
type FlightTrack struct {
	waypoints []Waypoint
}

// NewFlightTrack copies wps into a new track.
func NewFlightTrack(wps []Waypoint) (FlightTrack, error) {
	if len(wps) == 0 {
		return FlightTrack{}, ErrEmptyTrack
	}
	cp := make([]Waypoint, len(wps))
	copy(cp, wps)
	return FlightTrack{waypoints: cp}, nil
}

// Len returns the number of waypoints.
func (t FlightTrack) Len() int { return len(t.waypoints) }

// Waypoints returns a copy of the track's waypoints.
func (t FlightTrack) Waypoints() []Waypoint {
	cp := make([]Waypoint, len(t.waypoints))
	copy(cp, t.waypoints)
	return cp
}

// Callsign returns the callsign of the first waypoint, or "" for an empty track.
func (t FlightTrack) Callsign() string {
	if len(t.waypoints) == 0 {
		return ""
	}
	return t.waypoints[0].Callsign
}

// Distance returns the summed great-circle length of the track in km.
func (t FlightTrack) Distance() float64 {
	points := make([]geo.Point, len(t.waypoints))
	for i, wp := range t.waypoints {
		points[i] = geo.Point{Lat: wp.Latitude, Lon: wp.Longitude}
	}
	return geo.PathDistance(points)
}

// MeanAltitude returns the arithmetic mean barometric altitude in meters.
func (t FlightTrack) MeanAltitude() float64 {
	return t.mean(func(wp Waypoint) float64 { return wp.BaroAltitude })
}

// MeanVelocity returns the arithmetic mean ground speed in m/s.
func (t FlightTrack) MeanVelocity() float64 {
	return t.mean(func(wp Waypoint) float64 { return wp.Velocity })
}

func (t FlightTrack) mean(field func(Waypoint) float64) float64 {
	if len(t.waypoints) == 0 {
		return 0
	}
	var sum float64
	for _, wp := range t.waypoints {
		sum += field(wp)
	}
	return sum / float64(len(t.waypoints))
}

// EmissionResult is the computed emission record for one flight.
// Build it with NewEmissionResult so the total and factor stay consistent.
type EmissionResult struct {
	AircraftType      string  `json:"aircraft_type"`
	FuelBurn          float64 `json:"fuel_burn"`          // kg
	CO2Direct         float64 `json:"co2_direct"`         // kg
	CO2Contrail       float64 `json:"co2_contrail"`       // kg CO2-equivalent
	CO2Total          float64 `json:"co2_total"`          // direct + contrail
	ContrailCoverage  float64 `json:"contrail_coverage"`  // km²
	ContrailIntensity float64 `json:"contrail_intensity"` // 0-1
	FlightDistance    float64 `json:"flight_distance"`    // km
	EmissionFactor    float64 `json:"emission_factor"`    // kg CO2 per km
}

// NewEmissionResult derives the total and the per-km emission factor from
// the component values. The factor is 0 when distance is 0.
func NewEmissionResult(aircraftType string, fuelBurn, co2Direct, co2Contrail, coverage, intensity, distance float64) EmissionResult {
	total := co2Direct + co2Contrail
	var factor float64
	if distance > 0 {
		factor = total / distance
	}
	return EmissionResult{
		AircraftType:      aircraftType,
		FuelBurn:          fuelBurn,
		CO2Direct:         co2Direct,
		CO2Contrail:       co2Contrail,
		CO2Total:          total,
		ContrailCoverage:  coverage,
		ContrailIntensity: intensity,
		FlightDistance:    distance,
		EmissionFactor:    factor,
	}
}

// CarbonTradingResult is the carbon cost of a single flight under one market.
type CarbonTradingResult struct {
	ID                     string              `json:"id"`
	Market                 string              `json:"market"`
	MarketName             string              `json:"market_name"`
	CalculationDate        string              `json:"calculation_date"` // YYYY-MM-DD
	CO2EmissionsKg         decimal.Decimal     `json:"co2_emissions_kg"`
	CO2EmissionsTonnes     decimal.Decimal     `json:"co2_emissions_tonnes"`
	CarbonPricePerTonne    decimal.Decimal     `json:"carbon_price_per_tonne"`
	CarbonCostTotal        decimal.Decimal     `json:"carbon_cost_total"`
	CarbonCostPerKm        decimal.Decimal     `json:"carbon_cost_per_km"`
	CarbonCostPerPassenger decimal.NullDecimal `json:"carbon_cost_per_passenger"` // valid only when passengers > 0
	NumPassengers          int                 `json:"num_passengers"`
}

// AnnualComplianceResult is an operator's yearly allowance balance.
type AnnualComplianceResult struct {
	Market                string          `json:"market"`
	MarketName            string          `json:"market_name"`
	TotalEmissionsTonnes  decimal.Decimal `json:"total_emissions_tonnes"`
	FreeAllowanceTonnes   decimal.Decimal `json:"free_allowance_tonnes"`
	OwnedCreditsTonnes    decimal.Decimal `json:"owned_credits_tonnes"`
	EmissionDeficitTonnes decimal.Decimal `json:"emission_deficit_tonnes"` // never negative
	CarbonPricePerTonne   decimal.Decimal `json:"carbon_price_per_tonne"`
	ComplianceCostUSD     decimal.Decimal `json:"compliance_cost_usd"`
	AllowancesToBuyTonnes decimal.Decimal `json:"allowances_to_buy_tonnes"`
	NeedsPurchase         bool            `json:"needs_purchase"`
}

// PurchaseStrategy splits a compliance deficit between allowances and
// offset credits.
type PurchaseStrategy struct {
	DeficitTonnes        decimal.Decimal `json:"deficit_tonnes"`
	AllowancePrice       decimal.Decimal `json:"allowance_price"`
	CreditPrice          decimal.Decimal `json:"credit_price"`
	MaxCreditsAllowed    decimal.Decimal `json:"max_credits_allowed"`
	CreditsToBuy         decimal.Decimal `json:"credits_to_buy"`
	AllowancesToBuy      decimal.Decimal `json:"allowances_to_buy"`
	CreditCost           decimal.Decimal `json:"credit_cost"`
	AllowanceCost        decimal.Decimal `json:"allowance_cost"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	BaselineCost         decimal.Decimal `json:"baseline_cost"` // all allowances
	Savings              decimal.Decimal `json:"savings"`
	AveragePricePerTonne decimal.Decimal `json:"average_price_per_tonne"`
	Recommendation       string          `json:"recommendation"`
}

// ForecastPoint is one year of a carbon cost projection.
type ForecastPoint struct {
	Year                int             `json:"year"`
	CarbonPrice         decimal.Decimal `json:"carbon_price"`
	AnnualCost          decimal.Decimal `json:"annual_cost"`
	CostIncreasePercent decimal.Decimal `json:"cost_increase_percent"`
}

// StrategyOption is one (market, cruise altitude) cell of a strategy sweep.
type StrategyOption struct {
	Market     string          `json:"market"`
	MarketName string          `json:"market_name"`
	AltitudeM  int             `json:"altitude_m"`
	CO2Kg      decimal.Decimal `json:"co2_kg"`
	CarbonCost decimal.Decimal `json:"carbon_cost"`
	CostPerKm  decimal.Decimal `json:"cost_per_km"`
}

// FlightRecord is one successfully processed batch row.
type FlightRecord struct {
	RecordID        string              `json:"record_id"`
	Callsign        string              `json:"callsign"`
	ICAO24          string              `json:"icao24"`
	TypeCode        string              `json:"typecode"`
	Emission        EmissionResult      `json:"emission"`
	CarbonCost      decimal.NullDecimal `json:"carbon_cost_usd"`
	CarbonCostPerKm decimal.NullDecimal `json:"carbon_cost_per_km_usd"`
}
