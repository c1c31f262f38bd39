package builder

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/analyzer"
	"github.com/joeydtaylor/npulse/pkg/internal/dsp"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type (
	AnalyzerConfig = analyzer.Config
	AnalyzerOption = types.Option[*analyzer.Analyzer]
	FilterProfile  = dsp.Profile
)

// Built-in filter profiles.
var (
	PulseProfile       = dsp.PulseProfile
	RespirationProfile = dsp.RespirationProfile
)

// NewAnalyzer creates an analyzer with the default configuration adjusted by options.
func NewAnalyzer(options ...types.Option[*analyzer.Analyzer]) *analyzer.Analyzer {
	return analyzer.NewAnalyzer(options...)
}

// DefaultAnalyzerConfig returns the analysis defaults.
func DefaultAnalyzerConfig() analyzer.Config {
	return analyzer.DefaultConfig()
}

// FormatSummary renders the per-channel and combined estimate lines.
func FormatSummary(res types.AnalysisResult) string {
	return analyzer.FormatSummary(res)
}

func AnalyzerWithConfig(cfg analyzer.Config) types.Option[*analyzer.Analyzer] {
	return analyzer.WithConfig(cfg)
}

func AnalyzerWithSamplingRate(fs float64) types.Option[*analyzer.Analyzer] {
	return analyzer.WithSamplingRate(fs)
}

// AnalyzerWithAssumedDuration sets the capture length used for the implied sampling rate.
func AnalyzerWithAssumedDuration(d time.Duration) types.Option[*analyzer.Analyzer] {
	return analyzer.WithAssumedDuration(d)
}

func AnalyzerWithEdgeTrim(trim, threshold int) types.Option[*analyzer.Analyzer] {
	return analyzer.WithEdgeTrim(trim, threshold)
}

func AnalyzerWithCalibration(k float64) types.Option[*analyzer.Analyzer] {
	return analyzer.WithCalibration(k)
}

func AnalyzerWithPulseProfile(p dsp.Profile) types.Option[*analyzer.Analyzer] {
	return analyzer.WithPulseProfile(p)
}

func AnalyzerWithRespiration(enabled bool, p dsp.Profile) types.Option[*analyzer.Analyzer] {
	return analyzer.WithRespiration(enabled, p)
}

func AnalyzerWithSpectral(enabled bool) types.Option[*analyzer.Analyzer] {
	return analyzer.WithSpectral(enabled)
}

func AnalyzerWithSensor(sensors ...types.Sensor) types.Option[*analyzer.Analyzer] {
	return analyzer.WithSensor(sensors...)
}

func AnalyzerWithLogger(loggers ...types.Logger) types.Option[*analyzer.Analyzer] {
	return analyzer.WithLogger(loggers...)
}
