package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/internallogger"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// Load reads the YAML file at path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults with overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		ApplyEnv(cfg)
		return cfg, Validate(cfg)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults. Unknown keys are errors.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns a joined error listing every invalid setting.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Log.Level != "" && !internallogger.ValidLevel(cfg.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error, dpanic, panic, fatal", cfg.Log.Level))
	}

	a := cfg.Acquisition
	if a.Duration <= 0 {
		errs = append(errs, fmt.Errorf("acquisition.duration must be positive, got %s", a.Duration))
	}
	if a.Tick <= 0 {
		errs = append(errs, fmt.Errorf("acquisition.tick must be positive, got %s", a.Tick))
	}
	if a.StartToken == "" {
		errs = append(errs, errors.New("acquisition.start_token is required"))
	}
	if a.ObserverBuffer < 0 {
		errs = append(errs, fmt.Errorf("acquisition.observer_buffer must not be negative, got %d", a.ObserverBuffer))
	}
	if a.CallTimeout <= 0 {
		errs = append(errs, fmt.Errorf("acquisition.call_timeout must be positive, got %s", a.CallTimeout))
	}
	if _, err := capture.ParseCompression(a.Compression); err != nil {
		errs = append(errs, fmt.Errorf("acquisition.compression: %w", err))
	}

	an := cfg.Analysis
	if an.SamplingRate <= 0 {
		errs = append(errs, fmt.Errorf("analysis.sampling_rate must be positive, got %v", an.SamplingRate))
	}
	if an.AssumedDuration <= 0 {
		errs = append(errs, fmt.Errorf("analysis.assumed_duration must be positive, got %s", an.AssumedDuration))
	}
	if an.EdgeTrim < 0 || an.TrimThreshold < 0 {
		errs = append(errs, errors.New("analysis.edge_trim and analysis.trim_threshold must not be negative"))
	}
	if an.TrimThreshold > 0 && 2*an.EdgeTrim > an.TrimThreshold {
		errs = append(errs, fmt.Errorf("analysis.edge_trim %d removes every sample of a %d-sample channel", an.EdgeTrim, an.TrimThreshold+1))
	}
	if an.Calibration <= 0 {
		errs = append(errs, fmt.Errorf("analysis.calibration must be positive, got %v", an.Calibration))
	}
	if an.MinRate < 0 || an.MaxRate <= an.MinRate {
		errs = append(errs, fmt.Errorf("analysis bounds (%v, %v) are invalid", an.MinRate, an.MaxRate))
	}
	if an.TrailingTrim < 0 {
		errs = append(errs, fmt.Errorf("analysis.trailing_trim must not be negative, got %d", an.TrailingTrim))
	}

	if u := cfg.Transport.URL; u != "" && !strings.HasPrefix(u, "ws://") && !strings.HasPrefix(u, "wss://") {
		errs = append(errs, fmt.Errorf("transport.url %q must use ws:// or wss://", u))
	}

	s := cfg.Storage
	if (s.AccessKey == "") != (s.SecretKey == "") {
		errs = append(errs, errors.New("storage.access_key and storage.secret_key must be set together"))
	}
	if _, err := capture.ParseCompression(s.Compression); err != nil {
		errs = append(errs, fmt.Errorf("storage.compression: %w", err))
	}
	if !utils.Contains([]string{"", "aes256", "aws:kms"}, strings.ToLower(s.SSE)) {
		errs = append(errs, fmt.Errorf("storage.sse %q is invalid; valid values: AES256, aws:kms", s.SSE))
	}

	p := cfg.Publish
	if len(p.Brokers) > 0 && p.Topic == "" {
		errs = append(errs, errors.New("publish.topic is required when brokers are set"))
	}
	if p.BreakerThreshold < 0 {
		errs = append(errs, fmt.Errorf("publish.breaker_threshold must not be negative, got %d", p.BreakerThreshold))
	}

	if (cfg.Server.TLSCert == "") != (cfg.Server.TLSKey == "") {
		errs = append(errs, errors.New("server.tls_cert and server.tls_key must be set together"))
	}

	return errors.Join(errs...)
}
