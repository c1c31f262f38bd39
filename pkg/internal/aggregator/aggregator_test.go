package aggregator_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/joeydtaylor/npulse/pkg/internal/aggregator"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

func TestInstantaneousRates(t *testing.T) {
	rates := aggregator.InstantaneousRates([]int{0, 220, 330}, 220, 73)
	if len(rates) != 2 || rates[0] != 73 || rates[1] != 146 {
		t.Fatalf("unexpected rates %v", rates)
	}
	if r := aggregator.InstantaneousRates([]int{5}, 220, 73); r != nil {
		t.Fatalf("expected no rates for a single peak, got %v", r)
	}
}

func TestRatesDropOutOfBounds(t *testing.T) {
	a := aggregator.New(220, 73, aggregator.Bounds{Min: 40, Max: 220})
	// intervals of 1 s (73), 0.25 s (292, too fast), 2 s (36.5, too slow), 0.5 s (146)
	peaks := []int{0, 220, 275, 715, 825}
	got := a.Rates(peaks)
	if len(got) != 2 || got[0] != 73 || got[1] != 146 {
		t.Fatalf("unexpected rates %v", got)
	}
	est := a.Estimate(peaks)
	if est.Average != 109.5 || est.Minimum != 73 || est.Maximum != 146 {
		t.Fatalf("unexpected estimate %+v", est)
	}
}

func TestIntervalEstimateUsesMeanInterval(t *testing.T) {
	a := aggregator.New(220, 60, aggregator.Bounds{Min: 0, Max: 100})
	// intervals of 1 s (60) and 2 s (30): 60 / 1.5 s is 40, not the mean rate 45
	peaks := []int{0, 220, 660}
	est := a.IntervalEstimate(peaks)
	if math.Abs(est.Average-40) > 1e-9 || est.Minimum != 30 || est.Maximum != 60 {
		t.Fatalf("unexpected interval estimate %+v", est)
	}
	if mean := a.Estimate(peaks).Average; mean != 45 {
		t.Fatalf("rate mean %v, want 45", mean)
	}
	// the 0.25 s interval (240) is out of bounds and takes no part in the mean interval
	est = a.IntervalEstimate([]int{0, 220, 275, 715})
	if math.Abs(est.Average-40) > 1e-9 {
		t.Fatalf("out-of-bounds interval leaked into the average: %+v", est)
	}
	if est := a.IntervalEstimate([]int{7}); !est.IsZero() {
		t.Fatalf("expected zero estimate for a single peak, got %+v", est)
	}
}

func TestBoundsAreOpen(t *testing.T) {
	b := aggregator.Bounds{Min: 40, Max: 220}
	if b.Contains(40) || b.Contains(220) || !b.Contains(40.0001) {
		t.Fatalf("bounds must be exclusive")
	}
}

func TestSummarizeEmptyIsZero(t *testing.T) {
	if est := aggregator.Summarize(nil); !est.IsZero() {
		t.Fatalf("expected zero estimate, got %+v", est)
	}
	if est := aggregator.Pool(nil, []float64{}, nil); est != (types.RateEstimate{}) {
		t.Fatalf("expected zero pooled estimate, got %+v", est)
	}
}

func TestSummaryOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		rates := make([]float64, 1+rng.Intn(30))
		for i := range rates {
			rates[i] = 40 + rng.Float64()*180
		}
		est := aggregator.Summarize(rates)
		if !(est.Minimum <= est.Average && est.Average <= est.Maximum) {
			t.Fatalf("ordering violated: %+v", est)
		}
	}
}

func TestPoolIsNotMeanOfMeans(t *testing.T) {
	c1 := []float64{60}
	c2 := []float64{90, 90, 90}
	est := aggregator.Pool(c1, c2)
	if math.Abs(est.Average-82.5) > 1e-12 {
		t.Fatalf("pooled average %v, want 82.5", est.Average)
	}
	if est.Minimum != 60 || est.Maximum != 90 {
		t.Fatalf("unexpected pooled extremes %+v", est)
	}
}
