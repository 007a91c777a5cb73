package services

import "math/rand"

const (
	gdpMultiplierMin = 1000
	gdpMultiplierMax = 2000
)

// EstimateGDP derives the synthetic GDP figure for one country: population
// times a uniform random multiplier in [1000, 2000] inclusive, divided by the
// exchange rate. Consumes one unit of randomness per call; the value is
// intentionally not reproducible between refreshes.
func EstimateGDP(population int64, rate float64) float64 {
	if rate <= 0 {
		rate = 1
	}

	multiplier := gdpMultiplierMin + rand.Intn(gdpMultiplierMax-gdpMultiplierMin+1)
	return float64(population) * float64(multiplier) / rate
}
