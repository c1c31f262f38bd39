package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Analysis.SamplingRate != 220 || cfg.Analysis.EdgeTrim != 500 || cfg.Analysis.TrailingTrim != 25 {
		t.Fatalf("unexpected analysis defaults %+v", cfg.Analysis)
	}
	if cfg.Acquisition.Tick != 100*time.Millisecond || cfg.Acquisition.StartToken != "1" {
		t.Fatalf("unexpected acquisition defaults %+v", cfg.Acquisition)
	}
	if p := cfg.PulseProfile(); p.Calibration != 73 || p.MinRate != 40 || p.MaxRate != 220 {
		t.Fatalf("unexpected pulse profile %+v", p)
	}
}

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	doc := `
log:
  level: debug
acquisition:
  duration: 30s
  stop_token: "0"
analysis:
  calibration: 72
  banners: ["Start"]
transport:
  url: ws://localhost:8765/device
publish:
  brokers: [localhost:9092]
`
	cfg, err := config.LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Acquisition.Duration != 30*time.Second || cfg.Acquisition.StopToken != "0" {
		t.Fatalf("acquisition not decoded: %+v", cfg.Acquisition)
	}
	if cfg.Analysis.Calibration != 72 || cfg.Analysis.SamplingRate != 220 {
		t.Fatalf("analysis override lost defaults: %+v", cfg.Analysis)
	}
	if c := cfg.Cleaner(); len(c.Banners) != 1 || c.TrailingTrim != 25 {
		t.Fatalf("unexpected cleaner %+v", c)
	}
	if cfg.Publish.Topic != "npulse.results" || len(cfg.Publish.Brokers) != 1 {
		t.Fatalf("unexpected publish config %+v", cfg.Publish)
	}
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	_, err := config.LoadFromReader(strings.NewReader("analysis:\n  sampling_rat: 100\n"))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestLoadFromReaderEmptyDocument(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty document should load defaults: %v", err)
	}
	if cfg.Analysis.SamplingRate != 220 {
		t.Fatalf("expected defaults, got %+v", cfg.Analysis)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	cfg.Analysis.SamplingRate = 0
	cfg.Transport.URL = "http://device"
	cfg.Storage.AccessKey = "only-key"
	cfg.Server.TLSCert = "server.crt"

	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"log.level", "analysis.sampling_rate", "transport.url", "storage.access_key", "server.tls_cert"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %s", err, want)
		}
	}
}

func TestValidateEdgeTrimBoundary(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.EdgeTrim, cfg.Analysis.TrimThreshold = 500, 1000
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("trim 500 keeps one sample of a 1001-sample channel, got %v", err)
	}
	cfg.Analysis.EdgeTrim = 501
	if err := config.Validate(cfg); err == nil || !strings.Contains(err.Error(), "analysis.edge_trim") {
		t.Fatalf("expected edge_trim error, got %v", err)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Analysis.EdgeTrim != 500 {
		t.Fatalf("expected default edge trim, got %d", cfg.Analysis.EdgeTrim)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NPULSE_SAMPLING_RATE", "250")
	t.Setenv("NPULSE_DURATION", "15s")
	t.Setenv("NPULSE_KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("NPULSE_EDGE_TRIM", "not-int")
	t.Setenv("NPULSE_S3_BUCKET", `"captures"`)
	t.Setenv("NPULSE_HTTP_ADDR", "127.0.0.1:9090")

	cfg := config.Default()
	config.ApplyEnv(cfg)
	if cfg.Analysis.SamplingRate != 250 || cfg.Acquisition.Duration != 15*time.Second {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Analysis, cfg.Acquisition)
	}
	if len(cfg.Publish.Brokers) != 2 || cfg.Publish.Brokers[1] != "b:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Publish.Brokers)
	}
	if cfg.Analysis.EdgeTrim != 500 {
		t.Fatalf("bad int should keep default, got %d", cfg.Analysis.EdgeTrim)
	}
	if cfg.Storage.Bucket != "captures" {
		t.Fatalf("expected quotes trimmed, got %q", cfg.Storage.Bucket)
	}
	if cfg.Server.Address != "127.0.0.1:9090" {
		t.Fatalf("unexpected server address %q", cfg.Server.Address)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "npulse.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  edge_trim: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.EdgeTrim != 100 {
		t.Fatalf("expected edge_trim 100, got %d", cfg.Analysis.EdgeTrim)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
