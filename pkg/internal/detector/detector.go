// Package detector locates cardiac (or respiratory) cycles in a filtered trace.
package detector

import (
	"fmt"
	"math"
	"sort"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Detect returns the strictly increasing indices of local maxima in trace that are at least
// separation seconds apart (the taller peak wins, the earlier one on ties) and whose prominence is
// at least minProminence. If fewer than two peaks survive the peaks are still returned together
// with an error wrapping types.ErrInsufficientData.
func Detect(trace []float64, fs, separation, minProminence float64) ([]int, error) {
	peaks := LocalMaxima(trace)
	if d := MinDistance(fs, separation); d > 1 {
		peaks = SelectByDistance(trace, peaks, d)
	}
	if minProminence > 0 {
		peaks = SelectByProminence(trace, peaks, minProminence)
	}
	if len(peaks) < 2 {
		return peaks, fmt.Errorf("%w: %d peaks", types.ErrInsufficientData, len(peaks))
	}
	return peaks, nil
}

// MinDistance converts a separation in seconds to samples, rounding up.
func MinDistance(fs, separation float64) int {
	d := int(math.Ceil(separation * fs))
	if d < 1 {
		return 1
	}
	return d
}

// LocalMaxima finds every sample strictly greater than its neighbours. A flat top is reported at
// its midpoint (rounded down) when both of its edges descend. The first and last samples are never
// maxima.
func LocalMaxima(x []float64) []int {
	var peaks []int
	n := len(x)
	for i := 1; i < n-1; i++ {
		if !(x[i-1] < x[i]) {
			continue
		}
		ahead := i + 1
		for ahead < n-1 && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			peaks = append(peaks, (i+ahead-1)/2)
			i = ahead - 1
		}
	}
	return peaks
}

// SelectByDistance drops peaks closer than distance samples to a taller (or equally tall and
// earlier) neighbour.
func SelectByDistance(x []float64, peaks []int, distance int) []int {
	if len(peaks) < 2 {
		return peaks
	}
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for _, i := range order {
		if !keep[i] {
			continue
		}
		for j := i - 1; j >= 0 && peaks[i]-peaks[j] < distance; j-- {
			keep[j] = false
		}
		for j := i + 1; j < len(peaks) && peaks[j]-peaks[i] < distance; j++ {
			keep[j] = false
		}
	}

	out := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// Prominence measures how far the peak at index p rises above the higher of the two lowest points
// reached on each side before a strictly taller sample or the trace edge.
func Prominence(x []float64, p int) float64 {
	h := x[p]

	leftMin := h
	for i := p; i >= 0 && x[i] <= h; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}
	rightMin := h
	for i := p; i < len(x) && x[i] <= h; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}
	return h - math.Max(leftMin, rightMin)
}

// SelectByProminence keeps the peaks whose prominence is at least minProminence.
func SelectByProminence(x []float64, peaks []int, minProminence float64) []int {
	out := make([]int, 0, len(peaks))
	for _, p := range peaks {
		if Prominence(x, p) >= minProminence {
			out = append(out, p)
		}
	}
	return out
}
