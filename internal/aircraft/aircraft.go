// Package aircraft holds the static emission-factor registry for supported
// aircraft types.
//
// Lookups never fail. An unknown type resolves, in order, by exact key, by
// substring match in declaration order, and finally to the "default" profile.
package aircraft

import "strings"

// DefaultType is the key of the fallback profile.
const DefaultType = "default"

// Factors describes the fuel burn and per-kg-fuel emission factors of one
// aircraft type.
type Factors struct {
	Type                string  `json:"aircraft_type"`
	FuelBurnCruise      float64 `json:"fuel_burn_rate_cruise"`  // kg/km
	FuelBurnClimb       float64 `json:"fuel_burn_rate_climb"`   // kg/km
	FuelBurnDescent     float64 `json:"fuel_burn_rate_descent"` // kg/km
	EFCO2               float64 `json:"ef_co2"`                 // kg CO2 / kg fuel
	EFNOx               float64 `json:"ef_nox"`
	EFH2O               float64 `json:"ef_h2o"`
	EFSoot              float64 `json:"ef_soot"`
	ContrailProbability float64 `json:"contrail_probability"` // informational only
}

// registry is kept in declaration order; fuzzy matching depends on it.
var registry = []Factors{
	// narrow-body
	{"A320", 2.5, 3.5, 1.2, 3.16, 0.013, 1.23, 0.0004, 0.35},
	{"A321", 2.7, 3.8, 1.3, 3.16, 0.013, 1.23, 0.0004, 0.38},
	{"B737-800", 2.4, 3.3, 1.1, 3.16, 0.014, 1.23, 0.0005, 0.33},
	{"B737-900", 2.6, 3.6, 1.2, 3.16, 0.014, 1.23, 0.0005, 0.36},
	// wide-body
	{"A330-300", 5.5, 7.5, 2.5, 3.16, 0.012, 1.23, 0.0003, 0.45},
	{"A350-900", 5.8, 8.0, 2.6, 3.16, 0.011, 1.23, 0.0003, 0.42},
	{"B777-300ER", 7.5, 10.0, 3.2, 3.16, 0.013, 1.23, 0.0004, 0.48},
	{"B787-9", 5.5, 7.8, 2.5, 3.16, 0.010, 1.23, 0.0002, 0.40},
	// very large
	{"B747-400", 12.0, 16.0, 5.0, 3.16, 0.015, 1.23, 0.0006, 0.55},
	{"A380", 11.5, 15.5, 4.8, 3.16, 0.012, 1.23, 0.0004, 0.52},

	{DefaultType, 3.0, 4.2, 1.5, 3.16, 0.013, 1.23, 0.0004, 0.35},
}

var byType = func() map[string]Factors {
	m := make(map[string]Factors, len(registry))
	for _, f := range registry {
		m[f.Type] = f
	}
	return m
}()

// Normalize uppercases and trims an aircraft type string.
func Normalize(aircraftType string) string {
	return strings.ToUpper(strings.TrimSpace(aircraftType))
}

// Lookup resolves an aircraft type to its emission factors.
func Lookup(aircraftType string) Factors {
	key := Normalize(aircraftType)
	if key == "" {
		return byType[DefaultType]
	}
	if f, ok := byType[key]; ok {
		return f
	}
	for _, f := range registry {
		if f.Type == DefaultType {
			continue
		}
		if strings.Contains(key, f.Type) || strings.Contains(f.Type, key) {
			return f
		}
	}
	return byType[DefaultType]
}

// Types lists the supported aircraft types in declaration order, without the
// default profile.
func Types() []string {
	types := make([]string, 0, len(registry)-1)
	for _, f := range registry {
		if f.Type != DefaultType {
			types = append(types, f.Type)
		}
	}
	return types
}

// Comparison is one row of a side-by-side aircraft comparison.
type Comparison struct {
	Requested           string  `json:"requested"`
	ResolvedType        string  `json:"resolved_type"`
	FuelBurnCruise      float64 `json:"fuel_burn_cruise"`
	EFCO2               float64 `json:"ef_co2"`
	ContrailProbability float64 `json:"contrail_probability"`
}

// Compare resolves each requested type and returns one row per distinct
// request, in request order.
func Compare(types []string) []Comparison {
	seen := make(map[string]bool, len(types))
	out := make([]Comparison, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		f := Lookup(t)
		out = append(out, Comparison{
			Requested:           t,
			ResolvedType:        f.Type,
			FuelBurnCruise:      f.FuelBurnCruise,
			EFCO2:               f.EFCO2,
			ContrailProbability: f.ContrailProbability,
		})
	}
	return out
}
