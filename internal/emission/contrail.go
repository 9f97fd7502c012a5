package emission

// Contrail proxy model constants. The chain is a simplified illustrative
// model and is kept exactly as published.
const (
	rfBaseCoefficient = 0.03
	energyScale       = 1e6
	energyDivisor     = 1000.0
	energyToCO2       = 0.5
	warmingMultiplier = 2.5
)

// ContrailImpact is the outcome of the contrail proxy model for one mask.
type ContrailImpact struct {
	CO2EquivalentKg  float64 `json:"co2_equivalent_kg"`
	CoverageKm2      float64 `json:"coverage_km2"`
	Intensity        float64 `json:"intensity"`
	RadiativeForcing float64 `json:"radiative_forcing"`
	EnergyImpact     float64 `json:"energy_impact"`
	PresentCells     int     `json:"present_cells"`
}

// ContrailCO2Equivalent converts a mask into a CO2-equivalent mass using the
// mean intensity of present cells. A nil mask has no impact.
func (c *Calculator) ContrailCO2Equivalent(mask *ContrailMask) ContrailImpact {
	if mask == nil {
		return ContrailImpact{}
	}
	return c.contrailImpact(mask, mask.MeanPresentIntensity())
}

// ContrailCO2EquivalentWithIntensity is ContrailCO2Equivalent with a
// precomputed intensity instead of the mask mean.
func (c *Calculator) ContrailCO2EquivalentWithIntensity(mask *ContrailMask, intensity float64) ContrailImpact {
	if mask == nil {
		return ContrailImpact{}
	}
	return c.contrailImpact(mask, intensity)
}

func (c *Calculator) contrailImpact(mask *ContrailMask, intensity float64) ContrailImpact {
	pixels := mask.PresentCells()
	coverage := float64(pixels) * c.pixelSizeKm * c.pixelSizeKm

	rf := rfBaseCoefficient * intensity * coverage
	energy := rf * coverage * energyScale * c.durationHours / energyDivisor
	co2eq := energy * energyToCO2 * warmingMultiplier

	return ContrailImpact{
		CO2EquivalentKg:  co2eq,
		CoverageKm2:      coverage,
		Intensity:        intensity,
		RadiativeForcing: rf,
		EnergyImpact:     energy,
		PresentCells:     pixels,
	}
}
