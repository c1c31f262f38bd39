package analyzer

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/dsp"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.config = cfg }
}

// WithSamplingRate sets the analysis sampling rate in Hz.
func WithSamplingRate(fs float64) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.config.SamplingRate = fs }
}

// WithAssumedDuration sets the capture duration used for the implied sampling rate.
func WithAssumedDuration(d time.Duration) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		if d > 0 {
			a.config.AssumedDuration = d
		}
	}
}

// WithEdgeTrim sets the per-end trim and the length a channel must exceed to be analysed.
func WithEdgeTrim(trim, threshold int) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		a.config.EdgeTrim = trim
		a.config.TrimThreshold = threshold
	}
}

// WithCalibration sets the pulse calibration constant.
func WithCalibration(k float64) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.config.Pulse.Calibration = k }
}

// WithPulseProfile replaces the cardiac profile.
func WithPulseProfile(p dsp.Profile) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.config.Pulse = p }
}

// WithRespiration toggles the breathing estimate and sets its profile.
func WithRespiration(enabled bool, p dsp.Profile) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		a.config.RespirationEnabled = enabled
		a.config.Respiration = p
	}
}

// WithSpectral toggles the FFT cross-check.
func WithSpectral(enabled bool) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.config.SpectralEnabled = enabled }
}

// WithLogger attaches loggers.
func WithLogger(loggers ...types.Logger) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.ConnectLogger(loggers...) }
}

// WithSensor attaches sensors.
func WithSensor(sensors ...types.Sensor) types.Option[*Analyzer] {
	return func(a *Analyzer) { a.ConnectSensor(sensors...) }
}

// WithComponentMetadata sets the analyzer name and id.
func WithComponentMetadata(name string, id string) types.Option[*Analyzer] {
	return func(a *Analyzer) {
		a.componentMetadata.Name = name
		a.componentMetadata.ID = id
	}
}
