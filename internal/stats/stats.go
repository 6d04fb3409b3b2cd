// Package stats provides small numeric summaries used by the scan and
// median commands.
package stats

import "sort"

// Median returns the median of data without modifying it. For an even
// number of values it returns the mean of the two middle values; for an
// empty input it returns 0.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Argmax returns the index of the largest value in data. Ties resolve to
// the lowest index. An empty input returns -1.
func Argmax(data []float64) int {
	if len(data) == 0 {
		return -1
	}
	best := 0
	for i, v := range data {
		if v > data[best] {
			best = i
		}
	}
	return best
}
