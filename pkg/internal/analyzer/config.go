package analyzer

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/dsp"
)

// Config holds the analysis parameters.
type Config struct {
	// SamplingRate is the rate the filters and detector assume, in Hz.
	SamplingRate float64
	// AssumedDuration is the capture length used to report the implied sampling rate.
	AssumedDuration time.Duration
	// Channels longer than TrimThreshold samples lose EdgeTrim samples at each end; shorter
	// channels are skipped.
	EdgeTrim      int
	TrimThreshold int

	Pulse              dsp.Profile
	Respiration        dsp.Profile
	RespirationEnabled bool
	// RespirationChannel is the 0-based channel used for the breathing estimate.
	RespirationChannel int
	SpectralEnabled    bool
}

// DefaultConfig returns the observed defaults: 220 Hz, 60 s, 500-sample trim above 1000 samples.
func DefaultConfig() Config {
	return Config{
		SamplingRate:       220,
		AssumedDuration:    60 * time.Second,
		EdgeTrim:           500,
		TrimThreshold:      1000,
		Pulse:              dsp.PulseProfile,
		Respiration:        dsp.RespirationProfile,
		RespirationEnabled: true,
		RespirationChannel: 0,
		SpectralEnabled:    true,
	}
}
