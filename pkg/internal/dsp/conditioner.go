package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// MinTraceLength is the shortest trace the conditioner will filter.
const MinTraceLength = 10

// Profile describes one analysis band: the filter used to condition a trace and the detection and
// rate parameters applied to the result.
type Profile struct {
	Name        string
	Low         float64 // Hz
	High        float64 // Hz
	Order       int
	Separation  float64 // seconds between accepted peaks
	Prominence  float64
	Calibration float64 // rate = Calibration / interval seconds
	MinRate     float64 // exclusive
	MaxRate     float64 // exclusive
}

// PulseProfile is the cardiac band.
var PulseProfile = Profile{
	Name:        "pulse",
	Low:         0.5,
	High:        8,
	Order:       4,
	Separation:  0.5,
	Prominence:  0.5,
	Calibration: 73,
	MinRate:     40,
	MaxRate:     220,
}

// RespirationProfile is the breathing band.
var RespirationProfile = Profile{
	Name:        "respiration",
	Low:         0.1,
	High:        0.5,
	Order:       4,
	Separation:  2,
	Prominence:  0.1,
	Calibration: 60,
	MinRate:     4,
	MaxRate:     60,
}

// Conditioner normalises a channel trace and band-limits it with a zero-phase Butterworth filter.
// A Conditioner is immutable once built and safe for concurrent use.
type Conditioner struct {
	profile  Profile
	fs       float64
	zpk      ZPK
	sections []Section
}

// NewConditioner designs the filter for profile at sampling rate fs.
func NewConditioner(profile Profile, fs float64) (*Conditioner, error) {
	zpk, err := ButterworthBandpass(profile.Order, profile.Low, profile.High, fs)
	if err != nil {
		return nil, fmt.Errorf("%s profile: %w", profile.Name, err)
	}
	return &Conditioner{
		profile:  profile,
		fs:       fs,
		zpk:      zpk,
		sections: zpk.Sections(),
	}, nil
}

// Profile returns the profile the conditioner was built for.
func (c *Conditioner) Profile() Profile { return c.profile }

// SamplingRate returns the rate the filter was designed at.
func (c *Conditioner) SamplingRate() float64 { return c.fs }

// Coefficients returns the equivalent transfer-function polynomials.
func (c *Conditioner) Coefficients() (b, a []float64) { return c.zpk.TransferFunction() }

// Sections returns a copy of the second-order sections.
func (c *Conditioner) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Condition removes the mean, scales to unit population standard deviation and filters
// forward-backward. The input is not modified. Traces shorter than MinTraceLength or with zero
// variance return types.ErrInsufficientData.
func (c *Conditioner) Condition(trace []float64) ([]float64, error) {
	if len(trace) < MinTraceLength {
		return nil, fmt.Errorf("%w: %d samples, need %d", types.ErrInsufficientData, len(trace), MinTraceLength)
	}

	mean, std := stat.PopMeanStdDev(trace, nil)
	if std == 0 || math.IsNaN(std) {
		return nil, fmt.Errorf("%w: zero variance", types.ErrInsufficientData)
	}

	norm := make([]float64, len(trace))
	copy(norm, trace)
	floats.AddConst(-mean, norm)
	floats.Scale(1/std, norm)

	return FiltFilt(c.sections, norm), nil
}

// Trace converts one channel of a record sequence to a float trace.
func Trace(records []types.Record, channel int) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.Channel(channel))
	}
	return out
}
