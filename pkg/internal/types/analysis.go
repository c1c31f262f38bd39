package types

import "time"

// ChannelResult is the analysis of one channel trace.
type ChannelResult struct {
	Index        int          `json:"index"`
	Samples      int          `json:"samples"`
	Estimate     RateEstimate `json:"estimate"`
	Rates        []float64    `json:"rates,omitempty"`
	Peaks        []int        `json:"peaks,omitempty"`
	Filtered     []float64    `json:"-"`
	SpectralRate float64      `json:"spectral_rate"`
	Skipped      bool         `json:"skipped"`
	Reason       string       `json:"reason,omitempty"`
}

// AnalysisResult is the full output of one offline or post-session analysis.
type AnalysisResult struct {
	Source          string                      `json:"source"`
	Channels        [ChannelCount]ChannelResult `json:"channels"`
	Combined        RateEstimate                `json:"combined"`
	Respiration     RateEstimate                `json:"respiration"`
	TotalSamples    int                         `json:"total_samples"`
	SamplingRate    float64                     `json:"sampling_rate"`
	AssumedDuration time.Duration               `json:"assumed_duration"`
	AnalyzedAt      time.Time                   `json:"analyzed_at"`
}

// Analyzer turns a record sequence into rate estimates.
type Analyzer interface {
	Analyze(records []Record) AnalysisResult
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	GetComponentMetadata() ComponentMetadata
}
