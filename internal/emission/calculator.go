// Package emission turns flight tracks and contrail masks into fuel burn,
// direct CO2 and contrail CO2-equivalent figures.
//
// The Calculator is stateless apart from its contrail assumptions, so one
// instance may be shared by concurrent callers.
package emission

import (
	"errors"
	"math"
	"strings"

	"github.com/trailsync/emission-engine/internal/aircraft"
	"github.com/trailsync/emission-engine/internal/model"
)

// Default contrail assumptions: a 2 km sensor pixel and 3 h persistence.
const (
	DefaultPixelSizeKm   = 2.0
	DefaultContrailHours = 3.0
)

// CO2PerKgFuel is the mass of CO2 released per kg of jet fuel burned.
const CO2PerKgFuel = 3.16

// Cruise reference speed for the speed-deviation penalty, m/s.
const referenceSpeed = 250.0

var (
	ErrInvalidPixelSize = errors.New("emission: pixel size must be positive")
	ErrInvalidDuration  = errors.New("emission: contrail duration must be positive")
)

// fuelBurnRates is keyed by coarse aircraft family, kg/km.
var fuelBurnRates = map[string]float64{
	"A320":    2.5,
	"A321":    2.7,
	"A330":    5.5,
	"A350":    5.8,
	"B737":    2.4,
	"B747":    12.0,
	"B777":    7.5,
	"B787":    5.5,
	"DEFAULT": 3.0,
}

// callsignIndicators are checked in order; the first substring hit wins.
var callsignIndicators = []struct {
	indicator string
	family    string
}{
	{"A32", "A320"},
	{"A33", "A330"},
	{"A35", "A350"},
	{"B73", "B737"},
	{"B74", "B747"},
	{"B77", "B777"},
	{"B78", "B787"},
}

// Calculator computes per-flight emissions.
type Calculator struct {
	pixelSizeKm   float64
	durationHours float64
}

// NewCalculator creates a calculator that assumes each mask pixel covers
// pixelSizeKm x pixelSizeKm and contrails persist for durationHours.
func NewCalculator(pixelSizeKm, durationHours float64) (*Calculator, error) {
	if !(pixelSizeKm > 0) {
		return nil, ErrInvalidPixelSize
	}
	if !(durationHours > 0) {
		return nil, ErrInvalidDuration
	}
	return &Calculator{pixelSizeKm: pixelSizeKm, durationHours: durationHours}, nil
}

// PixelSizeKm returns the assumed mask pixel edge length.
func (c *Calculator) PixelSizeKm() float64 { return c.pixelSizeKm }

// DurationHours returns the assumed contrail persistence.
func (c *Calculator) DurationHours() float64 { return c.durationHours }

// EstimateAircraftType guesses a coarse aircraft family from a callsign.
func EstimateAircraftType(callsign string) string {
	cs := strings.ToUpper(strings.TrimSpace(callsign))
	if cs == "" {
		return aircraft.DefaultType
	}
	for _, ind := range callsignIndicators {
		if strings.Contains(cs, ind.indicator) {
			return ind.family
		}
	}
	return aircraft.DefaultType
}

// BaseFuelRate returns the cruise burn rate for a coarse family in kg/km.
// Full type designators such as "B737-800" are not families and get the
// default rate.
func BaseFuelRate(aircraftType string) float64 {
	if rate, ok := fuelBurnRates[aircraft.Normalize(aircraftType)]; ok {
		return rate
	}
	return fuelBurnRates["DEFAULT"]
}

// AltitudeFactor is the fuel efficiency multiplier for a cruise altitude in meters.
func AltitudeFactor(altitudeM float64) float64 {
	switch {
	case altitudeM > 9000:
		return 0.85
	case altitudeM > 6000:
		return 0.92
	default:
		return 1.10
	}
}

// SpeedFactor penalises deviation from the 250 m/s reference speed.
func SpeedFactor(velocity float64) float64 {
	return 1 + 0.001*math.Abs(velocity-referenceSpeed)
}

// FuelBurn estimates fuel burned in kg over distanceKm.
func (c *Calculator) FuelBurn(distanceKm float64, aircraftType string, altitudeM, velocity float64) float64 {
	return distanceKm * BaseFuelRate(aircraftType) * AltitudeFactor(altitudeM) * SpeedFactor(velocity)
}

// DirectCO2 converts fuel mass to CO2 mass.
func (c *Calculator) DirectCO2(fuelKg float64) float64 {
	return fuelKg * CO2PerKgFuel
}

// FlightEmissions computes the full emission record for a track. An empty
// aircraftType is inferred from the track's callsign; a nil mask contributes
// no contrail effect.
func (c *Calculator) FlightEmissions(track model.FlightTrack, mask *ContrailMask, aircraftType string) model.EmissionResult {
	if strings.TrimSpace(aircraftType) == "" {
		aircraftType = EstimateAircraftType(track.Callsign())
	}

	distance := track.Distance()
	fuel := c.FuelBurn(distance, aircraftType, track.MeanAltitude(), track.MeanVelocity())
	direct := c.DirectCO2(fuel)
	contrail := c.ContrailCO2Equivalent(mask)

	return model.NewEmissionResult(
		aircraftType,
		fuel,
		direct,
		contrail.CO2EquivalentKg,
		contrail.CoverageKm2,
		contrail.Intensity,
		distance,
	)
}
