// Package aggregator turns peak sets into rate estimates.
package aggregator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// Bounds is an open interval of plausible rates per minute.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether min < rate < max.
func (b Bounds) Contains(rate float64) bool { return rate > b.Min && rate < b.Max }

// Aggregator converts inter-peak intervals to instantaneous rates and summarises them.
type Aggregator struct {
	fs          float64
	calibration float64
	bounds      Bounds
}

// New returns an aggregator for traces sampled at fs. Rates are calibration / interval seconds,
// kept only when inside bounds.
func New(fs, calibration float64, bounds Bounds) *Aggregator {
	return &Aggregator{fs: fs, calibration: calibration, bounds: bounds}
}

// Rates returns the instantaneous rates between consecutive peaks that fall inside the bounds.
func (a *Aggregator) Rates(peaks []int) []float64 {
	return utils.Filter(InstantaneousRates(peaks, a.fs, a.calibration), a.bounds.Contains)
}

// Estimate is Summarize(a.Rates(peaks)).
func (a *Aggregator) Estimate(peaks []int) types.RateEstimate {
	return Summarize(a.Rates(peaks))
}

// IntervalEstimate summarises peaks by their mean interval: Average is calibration divided by the
// mean in-bounds interval, which is the harmonic mean of the in-bounds rates. Minimum and Maximum
// are the extreme in-bounds rates.
func (a *Aggregator) IntervalEstimate(peaks []int) types.RateEstimate {
	rates := a.Rates(peaks)
	if len(rates) == 0 {
		return types.RateEstimate{}
	}
	est := Summarize(rates)
	est.Average = stat.HarmonicMean(rates, nil)
	return est
}

// InstantaneousRates returns calibration / (Δidx / fs) for each consecutive peak pair, in order.
func InstantaneousRates(peaks []int, fs, calibration float64) []float64 {
	if len(peaks) < 2 || fs <= 0 {
		return nil
	}
	rates := make([]float64, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		interval := float64(peaks[i]-peaks[i-1]) / fs
		if interval <= 0 {
			continue
		}
		rates = append(rates, calibration/interval)
	}
	return rates
}

// Summarize returns the mean, minimum and maximum of rates, or the zero estimate when empty.
func Summarize(rates []float64) types.RateEstimate {
	if len(rates) == 0 {
		return types.RateEstimate{}
	}
	return types.RateEstimate{
		Average: stat.Mean(rates, nil),
		Minimum: floats.Min(rates),
		Maximum: floats.Max(rates),
	}
}

// Pool concatenates every channel's surviving rates and summarises the pool.
func Pool(channels ...[]float64) types.RateEstimate {
	var n int
	for _, c := range channels {
		n += len(c)
	}
	pooled := make([]float64, 0, n)
	for _, c := range channels {
		pooled = append(pooled, c...)
	}
	return Summarize(pooled)
}
