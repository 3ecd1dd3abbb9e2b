// This file implements summary statistics over chain lengths and a small
// histogram that groups buckets by how many entries their chain holds.
//
// Both are used by table implementations to report on key distribution
// (how well the hash spreads keys over the fixed bucket array).
package util

import (
	"fmt"
	"math"
)

// ----------------------------------------------------------------------------
// Helper functions
// ----------------------------------------------------------------------------

type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	MinMaxRatio  float64 `json:"min_max_ratio"`
}

// NewStats computes the standard deviation, minimum, and maximum values
// from an array of float64 values.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	// initialize min and max with the first value
	min := values[0]
	max := values[0]

	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	mean := sum / float64(len(values))

	// population standard deviation
	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}
	stdDev := math.Sqrt(sumSquaredDiffs / float64(len(values)))

	var minMaxRatio float64 = 1.0
	if max > 0 {
		minMaxRatio = min / max
	}

	return Stats{
		StdDeviation: stdDev,
		Min:          min,
		Max:          max,
		Mean:         mean,
		MinMaxRatio:  minMaxRatio,
	}
}

type DistributionStats struct {
	Stats
	DistributionQuality float64 `json:"distribution_quality"`
}

// NewDistributionStats computes quality metrics for the distribution of entries over buckets.
// A quality of 1 means every chain has the same length.
func NewDistributionStats(chainLengths []float64) DistributionStats {
	stats := NewStats(chainLengths)

	// coefficient of variation
	var cv float64
	if stats.Mean > 0 {
		cv = stats.StdDeviation / stats.Mean
	}

	// lower CV and higher min/max ratio indicate better distribution
	distributionQuality := (1.0-math.Min(1.0, cv))*0.5 + stats.MinMaxRatio*0.5

	return DistributionStats{
		Stats:               stats,
		DistributionQuality: distributionQuality,
	}
}

// ----------------------------------------------------------------------------
// ChainHistogram
// ----------------------------------------------------------------------------

// chainBoundaries are the inclusive upper bounds of the histogram buckets.
// Chains longer than the last boundary are counted in an overflow bucket.
var chainBoundaries = []int{0, 1, 2, 3, 7, 15}

// ChainHistogram counts buckets by the length of their chain.
// It is not safe for concurrent use.
type ChainHistogram struct {
	counts  []int
	samples int
	longest int
}

// NewChainHistogram creates an empty histogram
func NewChainHistogram() *ChainHistogram {
	return &ChainHistogram{
		counts: make([]int, len(chainBoundaries)+1),
	}
}

// AddChain records one bucket holding a chain of the given length
func (h *ChainHistogram) AddChain(length int) {
	idx := len(chainBoundaries)
	for i, boundary := range chainBoundaries {
		if length <= boundary {
			idx = i
			break
		}
	}

	h.counts[idx]++
	h.samples++
	if length > h.longest {
		h.longest = length
	}
}

// Samples returns the number of recorded chains
func (h *ChainHistogram) Samples() int {
	return h.samples
}

// Longest returns the length of the longest recorded chain
func (h *ChainHistogram) Longest() int {
	return h.longest
}

// Distribution returns one label per histogram bucket ("0", "1", "4-7", ">15", ...)
// and the share of chains in that bucket in percent.
func (h *ChainHistogram) Distribution() ([]string, []float64) {
	labels := make([]string, len(h.counts))
	percentages := make([]float64, len(h.counts))

	lower := 0
	for i := range h.counts {
		switch {
		case i == len(chainBoundaries):
			labels[i] = fmt.Sprintf(">%d", chainBoundaries[len(chainBoundaries)-1])
		case lower == chainBoundaries[i]:
			labels[i] = fmt.Sprintf("%d", lower)
		default:
			labels[i] = fmt.Sprintf("%d-%d", lower, chainBoundaries[i])
		}
		if i < len(chainBoundaries) {
			lower = chainBoundaries[i] + 1
		}

		if h.samples > 0 {
			percentages[i] = float64(h.counts[i]) * 100.0 / float64(h.samples)
		}
	}

	return labels, percentages
}
