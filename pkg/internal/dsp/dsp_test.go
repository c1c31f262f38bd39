package dsp_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/joeydtaylor/npulse/pkg/internal/dsp"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

func TestButterworthBandpassCoefficients(t *testing.T) {
	zpk, err := dsp.ButterworthBandpass(4, 0.5, 8, 220)
	if err != nil {
		t.Fatalf("design: %v", err)
	}
	if len(zpk.Poles) != 8 || len(zpk.Zeros) != 8 {
		t.Fatalf("expected 8 poles and zeros, got %d/%d", len(zpk.Poles), len(zpk.Zeros))
	}
	if rel := math.Abs(zpk.Gain-1.009244e-4) / 1.009244e-4; rel > 1e-4 {
		t.Fatalf("gain %.8e out of tolerance", zpk.Gain)
	}
	for _, p := range zpk.Poles {
		if cmplx.Abs(p) >= 1 {
			t.Fatalf("unstable pole %v", p)
		}
	}

	b, a := zpk.TransferFunction()
	if len(b) != 9 || len(a) != 9 {
		t.Fatalf("expected 9 coefficients, got b=%d a=%d", len(b), len(a))
	}
	if a[0] != 1 {
		t.Fatalf("a not normalised: %v", a[0])
	}
	if math.Abs(a[1]-(-7.4285978)) > 1e-6 {
		t.Fatalf("a[1] = %.8f", a[1])
	}
}

func TestButterworthBandpassResponse(t *testing.T) {
	zpk, err := dsp.ButterworthBandpass(4, 0.5, 8, 220)
	if err != nil {
		t.Fatalf("design: %v", err)
	}
	if g := zpk.Response(0, 220); g > 1e-9 {
		t.Fatalf("DC gain %v, want ~0", g)
	}
	if g := zpk.Response(110, 220); g > 1e-9 {
		t.Fatalf("Nyquist gain %v, want ~0", g)
	}
	if g := zpk.Response(2, 220); math.Abs(g-1) > 0.01 {
		t.Fatalf("centre gain %v, want ~1", g)
	}
	if g := zpk.Response(0.5, 220); math.Abs(g-math.Sqrt(0.5)) > 0.01 {
		t.Fatalf("lower edge gain %v, want -3 dB", g)
	}
}

func TestSectionsMatchZPK(t *testing.T) {
	zpk, err := dsp.ButterworthBandpass(4, 0.5, 8, 220)
	if err != nil {
		t.Fatalf("design: %v", err)
	}
	sections := zpk.Sections()
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	for _, f := range []float64{0.3, 1, 2, 5, 12, 40} {
		e := cmplx.Exp(complex(0, -2*math.Pi*f/220))
		h := complex(1, 0)
		for _, s := range sections {
			num := complex(s.B[0], 0) + complex(s.B[1], 0)*e + complex(s.B[2], 0)*e*e
			den := complex(s.A[0], 0) + complex(s.A[1], 0)*e + complex(s.A[2], 0)*e*e
			h *= num / den
		}
		want := zpk.Response(f, 220)
		if math.Abs(cmplx.Abs(h)-want) > 1e-9*math.Max(1, want) {
			t.Fatalf("f=%v: sections %v, zpk %v", f, cmplx.Abs(h), want)
		}
	}
}

func TestButterworthBandpassRejectsBadBand(t *testing.T) {
	cases := [][3]float64{{0, 8, 220}, {8, 0.5, 220}, {0.5, 110, 220}, {0.5, 8, 0}}
	for _, c := range cases {
		if _, err := dsp.ButterworthBandpass(4, c[0], c[1], c[2]); !errors.Is(err, dsp.ErrInvalidBand) {
			t.Fatalf("band %v: expected ErrInvalidBand, got %v", c, err)
		}
	}
	if _, err := dsp.ButterworthBandpass(0, 0.5, 8, 220); err == nil {
		t.Fatalf("expected error for zero order")
	}
}

func TestLFilterZISteadyState(t *testing.T) {
	b := []float64{0.2, 0.4, 0.2}
	a := []float64{1, -0.5, 0.3}
	zi := dsp.LFilterZI(b, a)
	s := []dsp.Section{{B: [3]float64{0.2, 0.4, 0.2}, A: [3]float64{1, -0.5, 0.3}}}

	step := make([]float64, 20)
	for i := range step {
		step[i] = 1
	}
	y := dsp.SOSFilter(s, step, [][2]float64{{zi[0], zi[1]}})
	for i, v := range y {
		if math.Abs(v-1) > 1e-12 {
			t.Fatalf("sample %d = %v, want steady state 1", i, v)
		}
	}
}

func TestFiltFiltIsZeroPhase(t *testing.T) {
	c, err := dsp.NewConditioner(dsp.PulseProfile, 220)
	if err != nil {
		t.Fatalf("conditioner: %v", err)
	}
	const n = 2000
	trace := make([]float64, n)
	for i := range trace {
		trace[i] = math.Sin(2 * math.Pi * 2 * float64(i) / 220)
	}
	y, err := c.Condition(trace)
	if err != nil {
		t.Fatalf("condition: %v", err)
	}
	if len(y) != n {
		t.Fatalf("length %d, want %d", len(y), n)
	}
	// A unit-variance sine has amplitude sqrt(2). The 0.5 Hz edge decays slowly, so only the
	// interior past the start transient and well before the end transient is checked.
	for i := 500; i < 1250; i++ {
		want := math.Sqrt2 * trace[i]
		if math.Abs(y[i]-want) > 0.05 {
			t.Fatalf("sample %d = %v, want %v", i, y[i], want)
		}
	}
}

// Reference values from scipy.signal.filtfilt(b, a, x) with b, a = butter(4, [0.5/110, 8/110], "band").
func TestFiltFiltMatchesReference(t *testing.T) {
	zpk, err := dsp.ButterworthBandpass(4, 0.5, 8, 220)
	if err != nil {
		t.Fatalf("design: %v", err)
	}
	x := make([]float64, 300)
	for i := range x {
		ti := float64(i) / 220
		x[i] = math.Sin(2*math.Pi*1.2*ti) + 0.5*math.Sin(2*math.Pi*20*ti) + 0.3*math.Cos(2*math.Pi*0.1*ti)
	}
	y := dsp.FiltFilt(zpk.Sections(), x)
	want := map[int]float64{
		0:   0.31833376956990106,
		1:   0.3470779546995427,
		150: -1.078216654682522,
		298: -0.32639569865564283,
		299: -0.2770524440878415,
	}
	for i, w := range want {
		if math.Abs(y[i]-w) > 1e-5 {
			t.Fatalf("y[%d] = %.12f, want %.12f", i, y[i], w)
		}
	}
}

func TestConditionInsufficientData(t *testing.T) {
	c, err := dsp.NewConditioner(dsp.PulseProfile, 220)
	if err != nil {
		t.Fatalf("conditioner: %v", err)
	}

	constant := make([]float64, 50)
	for i := range constant {
		constant[i] = 512
	}
	if _, err := c.Condition(constant); !errors.Is(err, types.ErrInsufficientData) {
		t.Fatalf("constant trace: expected ErrInsufficientData, got %v", err)
	}
	if _, err := c.Condition(make([]float64, 9)); !errors.Is(err, types.ErrInsufficientData) {
		t.Fatalf("short trace: expected ErrInsufficientData, got %v", err)
	}
}

func TestConditionShortTraceClampsPadding(t *testing.T) {
	c, err := dsp.NewConditioner(dsp.PulseProfile, 220)
	if err != nil {
		t.Fatalf("conditioner: %v", err)
	}
	trace := []float64{1, 3, 2, 5, 4, 6, 2, 8, 1, 7, 3, 9}
	orig := append([]float64(nil), trace...)
	y, err := c.Condition(trace)
	if err != nil {
		t.Fatalf("condition: %v", err)
	}
	if len(y) != len(trace) {
		t.Fatalf("length %d, want %d", len(y), len(trace))
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d not finite: %v", i, v)
		}
		if trace[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestRespirationProfileDesigns(t *testing.T) {
	c, err := dsp.NewConditioner(dsp.RespirationProfile, 220)
	if err != nil {
		t.Fatalf("respiration conditioner: %v", err)
	}
	b, a := c.Coefficients()
	if len(b) != 9 || len(a) != 9 {
		t.Fatalf("unexpected coefficient lengths %d/%d", len(b), len(a))
	}
	if _, err := dsp.NewConditioner(dsp.PulseProfile, 10); !errors.Is(err, dsp.ErrInvalidBand) {
		t.Fatalf("expected ErrInvalidBand when high edge exceeds Nyquist, got %v", err)
	}
}

func TestTrace(t *testing.T) {
	recs := []types.Record{{C1: 1, C2: 2, C3: 3}, {C1: 4, C2: 5, C3: 6}}
	got := dsp.Trace(recs, 1)
	if len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Fatalf("unexpected trace %v", got)
	}
}
