// Package progress computes checklist completion metrics.
package progress

import "math"

// Percent returns completed/total as a percentage rounded to two decimals.
// A target with no checklist items is 0% complete, never NaN.
func Percent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(completed) / float64(total) * 100)
}

// Mean returns the unweighted arithmetic mean of the given percentages,
// rounded to two decimals. Each target contributes equally to its project's
// average regardless of how many checklist items it carries.
func Mean(percents []float64) float64 {
	if len(percents) == 0 {
		return 0
	}
	var sum float64
	for _, p := range percents {
		sum += p
	}
	return round2(sum / float64(len(percents)))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
