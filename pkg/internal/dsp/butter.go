package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// ErrInvalidBand is returned when band edges are not 0 < low < high < fs/2.
var ErrInvalidBand = errors.New("dsp: invalid band edges")

// ZPK is a digital filter in zeros/poles/gain form.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Section is one second-order section, b and a normalised so that A[0] == 1.
type Section struct {
	B [3]float64
	A [3]float64
}

// ButterworthBandpass designs an order-N band-pass filter for the band [low, high] Hz at
// sampling rate fs. The result has 2N poles.
//
// The design follows the classic analog route: normalised Butterworth prototype, low-pass to
// band-pass transform about the pre-warped edges, then the bilinear transform.
func ButterworthBandpass(order int, low, high, fs float64) (ZPK, error) {
	if order < 1 {
		return ZPK{}, fmt.Errorf("dsp: order must be positive, got %d", order)
	}
	nyq := fs / 2
	if !(fs > 0) || !(low > 0) || !(high > low) || !(high < nyq) {
		return ZPK{}, fmt.Errorf("%w: low=%g high=%g fs=%g", ErrInvalidBand, low, high, fs)
	}

	const fs2 = 4.0 // bilinear transform at an internal rate of 2
	w1 := fs2 * math.Tan(math.Pi*(low/nyq)/2)
	w2 := fs2 * math.Tan(math.Pi*(high/nyq)/2)
	bw := w2 - w1
	wo := math.Sqrt(w1 * w2)

	proto := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		proto = append(proto, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*order))))
	}

	poles := make([]complex128, 0, 2*order)
	woSq := complex(wo*wo, 0)
	lp := make([]complex128, len(proto))
	for i, p := range proto {
		lp[i] = p * complex(bw/2, 0)
	}
	for _, p := range lp {
		poles = append(poles, p+cmplx.Sqrt(p*p-woSq))
	}
	for _, p := range lp {
		poles = append(poles, p-cmplx.Sqrt(p*p-woSq))
	}
	k := math.Pow(bw, float64(order))

	// Bilinear transform. The band-pass has N zeros at the origin which map to +1; the
	// remaining N zeros sit at Nyquist (-1).
	num := complex(1, 0)
	den := complex(1, 0)
	zeros := make([]complex128, 0, 2*order)
	for i := 0; i < order; i++ {
		num *= complex(fs2, 0)
		zeros = append(zeros, complex(1, 0))
	}
	for i := 0; i < order; i++ {
		zeros = append(zeros, complex(-1, 0))
	}
	dpoles := make([]complex128, len(poles))
	for i, p := range poles {
		den *= complex(fs2, 0) - p
		dpoles[i] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
	}

	return ZPK{Zeros: zeros, Poles: dpoles, Gain: k * real(num/den)}, nil
}

// TransferFunction expands the filter into polynomial coefficients (b, a), highest power first.
func (z ZPK) TransferFunction() (b, a []float64) {
	b = poly(z.Zeros)
	for i := range b {
		b[i] *= z.Gain
	}
	return b, poly(z.Poles)
}

// Sections realises the filter as a cascade of second-order sections. Each section takes one
// conjugate pole pair (ordered by distance from the unit circle, innermost first) and the zero
// pair {+1, -1}; the overall gain goes into the first section. Real poles, which only appear for
// odd orders with wide bands, are paired with each other.
func (z ZPK) Sections() []Section {
	const eps = 1e-12
	upper := make([]complex128, 0, len(z.Poles)/2)
	var reals []float64
	for _, p := range z.Poles {
		switch {
		case math.Abs(imag(p)) <= eps:
			reals = append(reals, real(p))
		case imag(p) > 0:
			upper = append(upper, p)
		}
	}
	sort.SliceStable(upper, func(i, j int) bool { return cmplx.Abs(upper[i]) < cmplx.Abs(upper[j]) })
	sort.Float64s(reals)

	sections := make([]Section, 0, len(upper)+len(reals)/2)
	for _, p := range upper {
		mag := cmplx.Abs(p)
		sections = append(sections, Section{
			B: [3]float64{1, 0, -1},
			A: [3]float64{1, -2 * real(p), mag * mag},
		})
	}
	for i := 0; i+1 < len(reals); i += 2 {
		sections = append(sections, Section{
			B: [3]float64{1, 0, -1},
			A: [3]float64{1, -(reals[i] + reals[i+1]), reals[i] * reals[i+1]},
		})
	}
	if len(sections) > 0 {
		for i := range sections[0].B {
			sections[0].B[i] *= z.Gain
		}
	}
	return sections
}

// Response evaluates |H(e^{jw})| at frequency f Hz for sampling rate fs.
func (z ZPK) Response(f, fs float64) float64 {
	e := cmplx.Exp(complex(0, 2*math.Pi*f/fs))
	h := complex(z.Gain, 0)
	for _, zr := range z.Zeros {
		h *= e - zr
	}
	for _, p := range z.Poles {
		h /= e - p
	}
	return cmplx.Abs(h)
}

func poly(roots []complex128) []float64 {
	c := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		for i, v := range c {
			next[i] += v
			next[i+1] -= v * r
		}
		c = next
	}
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}
