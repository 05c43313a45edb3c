package replenishment

import "math"

// confidenceIntervalWidth converts a 95% interval width into one standard deviation (2 x 1.96)
const confidenceIntervalWidth = 3.92

// DefaultZScore is used for service levels outside the lookup table
const DefaultZScore = 1.65

var serviceLevelZScores = []struct {
	level float64
	z     float64
}{
	{0.90, 1.28},
	{0.95, 1.65},
	{0.975, 1.96},
	{0.99, 2.33},
}

// ZScore returns the normal quantile for a service level, or DefaultZScore
// when the level is not one of the tabulated targets
func ZScore(serviceLevel float64) float64 {
	const tolerance = 1e-9
	for _, row := range serviceLevelZScores {
		if math.Abs(serviceLevel-row.level) < tolerance {
			return row.z
		}
	}
	return DefaultZScore
}

// DemandDeviation approximates the daily demand standard deviation from the
// confidence bounds of the given entries. No entries means no deviation.
func DemandDeviation(entries []ForecastEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0.0
	for _, entry := range entries {
		total += entry.Spread() / confidenceIntervalWidth
	}
	return total / float64(len(entries))
}

// SafetyStock computes ceil(z * sigma * sqrt(leadTimeDays)).
// A lead time of zero or less yields no buffer.
func SafetyStock(deviation, serviceLevel float64, leadTimeDays int) int64 {
	if leadTimeDays <= 0 || deviation <= 0 {
		return 0
	}
	return int64(math.Ceil(ZScore(serviceLevel) * deviation * math.Sqrt(float64(leadTimeDays))))
}

// EstimateSafetyStock is SafetyStock over the deviation of the given entries
func EstimateSafetyStock(entries []ForecastEntry, serviceLevel float64, leadTimeDays int) int64 {
	return SafetyStock(DemandDeviation(entries), serviceLevel, leadTimeDays)
}
