package report

// Everyday equivalents for a CO2 mass.
const (
	kgCO2PerTreeYear = 21.0  // absorbed by one tree in a year
	kgCO2PerCarMile  = 0.404 // average passenger car
)

// TreesToOffset is the number of trees needed for a year to absorb co2Kg.
func TreesToOffset(co2Kg float64) int64 {
	return int64(co2Kg / kgCO2PerTreeYear)
}

// CarMiles is the distance an average car drives to emit co2Kg.
func CarMiles(co2Kg float64) int64 {
	return int64(co2Kg / kgCO2PerCarMile)
}
