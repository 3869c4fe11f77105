package evaluation

import (
	"math"
	"sort"
)

// MetricSummary aggregates one metric across all evaluated seeds.
type MetricSummary struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
}

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev returns the population standard deviation, or 0 for an
// empty slice.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		d := v - m
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

// median returns the middle value (average of the two middle values for an
// even count), or 0 for an empty slice.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// summarize reduces a metric series to its summary statistics.
func summarize(values []float64) MetricSummary {
	return MetricSummary{
		Mean:   mean(values),
		Std:    populationStdDev(values),
		Median: median(values),
	}
}
