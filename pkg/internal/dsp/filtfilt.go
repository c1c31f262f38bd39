package dsp

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LFilterZI returns the steady-state initial conditions of a direct-form II transposed filter
// for a unit step input. a must be normalised so that a[0] == 1.
func LFilterZI(b, a []float64) []float64 {
	n := len(a)
	if n < 2 || len(b) != n {
		return nil
	}
	m := n - 1

	// (I - companion(a)^T) zi = b[1:] - a[1:]*b[0]
	lhs := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		lhs.Set(i, i, 1)
		lhs.Set(i, 0, lhs.At(i, 0)+a[i+1])
		if i+1 < m {
			lhs.Set(i, i+1, lhs.At(i, i+1)-1)
		}
	}
	rhs := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(lhs, rhs); err != nil {
		return make([]float64, m)
	}
	out := make([]float64, m)
	for i := range out {
		out[i] = zi.AtVec(i)
	}
	return out
}

// SectionsZI returns per-section steady-state initial conditions for a unit step through the
// whole cascade.
func SectionsZI(sections []Section) [][2]float64 {
	out := make([][2]float64, len(sections))
	scale := 1.0
	for i, s := range sections {
		zi := LFilterZI(s.B[:], s.A[:])
		out[i] = [2]float64{scale * zi[0], scale * zi[1]}
		scale *= floats.Sum(s.B[:]) / floats.Sum(s.A[:])
	}
	return out
}

// SOSFilter runs x through the cascade with the given initial state and returns the output.
// zi may be nil for a zero initial state.
func SOSFilter(sections []Section, x []float64, zi [][2]float64) []float64 {
	y := slices.Clone(x)
	for si, s := range sections {
		var z0, z1 float64
		if zi != nil {
			z0, z1 = zi[si][0], zi[si][1]
		}
		for i, xv := range y {
			yv := s.B[0]*xv + z0
			z0 = s.B[1]*xv - s.A[1]*yv + z1
			z1 = s.B[2]*xv - s.A[2]*yv
			y[i] = yv
		}
	}
	return y
}

// FiltFilt applies the cascade forward and backward for zero phase distortion. The signal is
// extended at both ends by odd reflection of 3*(2*len(sections)+1) samples, clamped to len(x)-1,
// and each pass starts from the steady-state response to its first sample.
func FiltFilt(sections []Section, x []float64) []float64 {
	n := len(x)
	if n < 2 || len(sections) == 0 {
		return slices.Clone(x)
	}

	padlen := 3 * (2*len(sections) + 1)
	if padlen >= n {
		padlen = n - 1
	}

	ext := make([]float64, 0, n+2*padlen)
	for i := padlen; i > 0; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := 0; i < padlen; i++ {
		ext = append(ext, 2*x[n-1]-x[n-2-i])
	}

	zi := SectionsZI(sections)

	y := SOSFilter(sections, ext, scaleZI(zi, ext[0]))
	slices.Reverse(y)
	y = SOSFilter(sections, y, scaleZI(zi, y[0]))
	slices.Reverse(y)

	return y[padlen : padlen+n]
}

func scaleZI(zi [][2]float64, v float64) [][2]float64 {
	out := make([][2]float64, len(zi))
	for i, z := range zi {
		out[i] = [2]float64{z[0] * v, z[1] * v}
	}
	return out
}
