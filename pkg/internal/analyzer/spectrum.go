package analyzer

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DominantRate returns 60 times the frequency of the strongest spectral bin of trace within
// [low, high] Hz, or 0 when no bin falls in the band.
func DominantRate(trace []float64, fs, low, high float64) float64 {
	n := len(trace)
	if n < 2 || fs <= 0 {
		return 0
	}
	spectrum := fft.FFTReal(trace)

	var best, bestMag float64
	for k := 1; k <= n/2; k++ {
		f := float64(k) * fs / float64(n)
		if f < low || f > high {
			continue
		}
		if mag := cmplx.Abs(spectrum[k]); mag > bestMag {
			best, bestMag = f, mag
		}
	}
	return 60 * best
}
