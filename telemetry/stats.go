// Package telemetry accumulates per-event collision statistics and writes
// structured CSV output.
package telemetry

import (
	"sort"
)

// RunStats holds aggregated statistics over a batch of events.
type RunStats struct {
	Events int `csv:"events"`

	// Participation
	MeanNpart float64 `csv:"npart_mean"`
	MeanNcoll float64 `csv:"ncoll_mean"`

	// Overlap factor distribution across sampled pairs
	KfMean float64 `csv:"kf_mean"`
	KfP10  float64 `csv:"kf_p10"`
	KfP50  float64 `csv:"kf_p50"`
	KfP90  float64 `csv:"kf_p90"`
}

// Percentile returns the linearly interpolated percentile from sorted values.
// p is in [0, 1]. Returns 0 for empty input.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeOverlapStats calculates mean and percentiles from overlap factors.
func ComputeOverlapStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, p10, p50, p90
}
