// Package config loads npulse settings from YAML with NPULSE_* environment overrides.
package config

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/dsp"
)

// Config is the root of the YAML document.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Transport   TransportConfig   `yaml:"transport"`
	Storage     StorageConfig     `yaml:"storage"`
	Publish     PublishConfig     `yaml:"publish"`
	Server      ServerConfig      `yaml:"server"`
}

// LogConfig selects the log level and an optional file sink.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AcquisitionConfig controls live sessions.
type AcquisitionConfig struct {
	Duration       time.Duration `yaml:"duration"`
	Tick           time.Duration `yaml:"tick"`
	StartToken     string        `yaml:"start_token"`
	StopToken      string        `yaml:"stop_token"`
	ObserverBuffer int           `yaml:"observer_buffer"`
	CallTimeout    time.Duration `yaml:"call_timeout"`
	StopTimeout    time.Duration `yaml:"stop_timeout"`
	SaveDir        string        `yaml:"save_dir"`
	Compression    string        `yaml:"compression"`
}

// AnalysisConfig controls offline and post-session analysis.
type AnalysisConfig struct {
	SamplingRate    float64       `yaml:"sampling_rate"`
	AssumedDuration time.Duration `yaml:"assumed_duration"`
	EdgeTrim        int           `yaml:"edge_trim"`
	TrimThreshold   int           `yaml:"trim_threshold"`
	Calibration     float64       `yaml:"calibration"`
	MinRate         float64       `yaml:"min_rate"`
	MaxRate         float64       `yaml:"max_rate"`
	Banners         []string      `yaml:"banners"`
	TrailingTrim    int           `yaml:"trailing_trim"`
	Respiration     bool          `yaml:"respiration"`
	Spectral        bool          `yaml:"spectral"`
}

// TransportConfig describes the websocket device bridge.
type TransportConfig struct {
	URL       string            `yaml:"url"`
	Headers   map[string]string `yaml:"headers"`
	ReadLimit int64             `yaml:"read_limit"`
}

// StorageConfig describes the S3 archive.
type StorageConfig struct {
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	RoleARN        string `yaml:"role_arn"`
	Bucket         string `yaml:"bucket"`
	Prefix         string `yaml:"prefix"`
	Compression    string `yaml:"compression"`
	Parquet        bool   `yaml:"parquet"`
	ParquetCodec   string `yaml:"parquet_codec"`
	SSE            string `yaml:"sse"`
	KMSKeyID       string `yaml:"kms_key_id"`
}

// PublishConfig describes the Kafka results topic.
type PublishConfig struct {
	Brokers          []string      `yaml:"brokers"`
	Topic            string        `yaml:"topic"`
	RequiredAcks     string        `yaml:"required_acks"`
	BreakerThreshold int           `yaml:"breaker_threshold"`
	BreakerWindow    time.Duration `yaml:"breaker_window"`
}

// ServerConfig describes the HTTP API started by "npulse serve".
type ServerConfig struct {
	Address     string        `yaml:"address"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	TLSCert     string        `yaml:"tls_cert"`
	TLSKey      string        `yaml:"tls_key"`

	// RemoteSources allows POST /analyze to fetch http(s) URLs.
	RemoteSources bool `yaml:"remote_sources"`
}

// Default returns the observed defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Acquisition: AcquisitionConfig{
			Duration:       60 * time.Second,
			Tick:           100 * time.Millisecond,
			StartToken:     "1",
			ObserverBuffer: 256,
			CallTimeout:    120 * time.Second,
			StopTimeout:    5 * time.Second,
			SaveDir:        capture.DefaultDir,
			Compression:    "none",
		},
		Analysis: AnalysisConfig{
			SamplingRate:    220,
			AssumedDuration: 60 * time.Second,
			EdgeTrim:        500,
			TrimThreshold:   1000,
			Calibration:     dsp.PulseProfile.Calibration,
			MinRate:         dsp.PulseProfile.MinRate,
			MaxRate:         dsp.PulseProfile.MaxRate,
			Banners:         append([]string(nil), capture.DefaultBanners...),
			TrailingTrim:    capture.DefaultTrailingTrim,
			Respiration:     true,
			Spectral:        true,
		},
		Transport: TransportConfig{ReadLimit: 1 << 20},
		Storage: StorageConfig{
			Region:       "us-east-1",
			Prefix:       "npulse/sessions/{yyyy}/{MM}/{dd}/",
			Compression:  "gzip",
			ParquetCodec: "snappy",
		},
		Publish: PublishConfig{
			Topic:            "npulse.results",
			RequiredAcks:     "all",
			BreakerThreshold: 3,
			BreakerWindow:    30 * time.Second,
		},
		Server: ServerConfig{
			Address:     ":8080",
			ReadTimeout: 30 * time.Second,
		},
	}
}

// PulseProfile returns the pulse filter profile with the configured calibration and bounds.
func (c *Config) PulseProfile() dsp.Profile {
	p := dsp.PulseProfile
	p.Calibration = c.Analysis.Calibration
	p.MinRate = c.Analysis.MinRate
	p.MaxRate = c.Analysis.MaxRate
	return p
}

// Cleaner returns the capture cleaner described by the analysis section.
func (c *Config) Cleaner() capture.Cleaner {
	return capture.Cleaner{
		Banners:      append([]string(nil), c.Analysis.Banners...),
		TrailingTrim: c.Analysis.TrailingTrim,
	}
}
