package util

import (
	"math"
	"testing"
)

func TestNewStats(t *testing.T) {
	s := NewStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if s.Min != 2 || s.Max != 9 {
		t.Errorf("expected min=2 max=9, got min=%v max=%v", s.Min, s.Max)
	}
	if s.Mean != 5 {
		t.Errorf("expected mean 5, got %v", s.Mean)
	}
	if math.Abs(s.StdDeviation-2) > 1e-9 {
		t.Errorf("expected std deviation 2, got %v", s.StdDeviation)
	}

	if empty := NewStats(nil); empty != (Stats{}) {
		t.Errorf("expected zero stats for no values, got %+v", empty)
	}
}

func TestNewDistributionStats(t *testing.T) {
	even := NewDistributionStats([]float64{3, 3, 3, 3})
	if even.DistributionQuality != 1 {
		t.Errorf("expected perfect quality for even chains, got %v", even.DistributionQuality)
	}

	skewed := NewDistributionStats([]float64{0, 0, 0, 12})
	if skewed.DistributionQuality >= even.DistributionQuality {
		t.Errorf("skewed distribution should score lower (%v >= %v)",
			skewed.DistributionQuality, even.DistributionQuality)
	}
}

func TestChainHistogram(t *testing.T) {
	h := NewChainHistogram()
	for _, length := range []int{0, 0, 1, 2, 5, 20} {
		h.AddChain(length)
	}

	if h.Samples() != 6 {
		t.Errorf("expected 6 samples, got %d", h.Samples())
	}
	if h.Longest() != 20 {
		t.Errorf("expected longest chain 20, got %d", h.Longest())
	}

	labels, percentages := h.Distribution()
	wantLabels := []string{"0", "1", "2", "3", "4-7", "8-15", ">15"}
	if len(labels) != len(wantLabels) {
		t.Fatalf("expected %d labels, got %v", len(wantLabels), labels)
	}
	for i, want := range wantLabels {
		if labels[i] != want {
			t.Errorf("label %d: expected %q, got %q", i, want, labels[i])
		}
	}

	var total float64
	for _, p := range percentages {
		total += p
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("percentages should sum to 100, got %v", total)
	}
	if math.Abs(percentages[0]-100.0/3.0) > 1e-9 {
		t.Errorf("expected a third of the chains to be empty, got %v", percentages[0])
	}
}
