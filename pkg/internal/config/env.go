package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	n, err := strconv.Atoi(EnvOr(key, ""))
	if err != nil {
		return def
	}
	return n
}

// EnvFloatOr returns the parsed float env value or def on empty/parse failure.
func EnvFloatOr(key string, def float64) float64 {
	f, err := strconv.ParseFloat(EnvOr(key, ""), 64)
	if err != nil {
		return def
	}
	return f
}

// EnvDurationOr returns the parsed duration env value or def on empty/parse failure.
func EnvDurationOr(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(EnvOr(key, ""))
	if err != nil {
		return def
	}
	return d
}

// EnvBoolOr returns the parsed bool env value or def on empty/parse failure.
func EnvBoolOr(key string, def bool) bool {
	b, err := strconv.ParseBool(EnvOr(key, ""))
	if err != nil {
		return def
	}
	return b
}

func envListOr(key string, def []string) []string {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ApplyEnv overrides cfg from NPULSE_* variables.
func ApplyEnv(cfg *Config) {
	cfg.Log.Level = EnvOr("NPULSE_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = EnvOr("NPULSE_LOG_FILE", cfg.Log.File)

	cfg.Acquisition.Duration = EnvDurationOr("NPULSE_DURATION", cfg.Acquisition.Duration)
	cfg.Acquisition.StartToken = EnvOr("NPULSE_START_TOKEN", cfg.Acquisition.StartToken)
	cfg.Acquisition.StopToken = EnvOr("NPULSE_STOP_TOKEN", cfg.Acquisition.StopToken)
	cfg.Acquisition.SaveDir = EnvOr("NPULSE_SAVE_DIR", cfg.Acquisition.SaveDir)
	cfg.Acquisition.Compression = EnvOr("NPULSE_COMPRESSION", cfg.Acquisition.Compression)

	cfg.Analysis.SamplingRate = EnvFloatOr("NPULSE_SAMPLING_RATE", cfg.Analysis.SamplingRate)
	cfg.Analysis.AssumedDuration = EnvDurationOr("NPULSE_ASSUMED_DURATION", cfg.Analysis.AssumedDuration)
	cfg.Analysis.EdgeTrim = EnvIntOr("NPULSE_EDGE_TRIM", cfg.Analysis.EdgeTrim)
	cfg.Analysis.Calibration = EnvFloatOr("NPULSE_CALIBRATION", cfg.Analysis.Calibration)
	cfg.Analysis.Respiration = EnvBoolOr("NPULSE_RESPIRATION", cfg.Analysis.Respiration)

	cfg.Transport.URL = EnvOr("NPULSE_WS_URL", cfg.Transport.URL)

	cfg.Storage.Region = EnvOr("NPULSE_S3_REGION", cfg.Storage.Region)
	cfg.Storage.Endpoint = EnvOr("NPULSE_S3_ENDPOINT", cfg.Storage.Endpoint)
	cfg.Storage.AccessKey = EnvOr("NPULSE_S3_ACCESS_KEY", cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = EnvOr("NPULSE_S3_SECRET_KEY", cfg.Storage.SecretKey)
	cfg.Storage.RoleARN = EnvOr("NPULSE_S3_ROLE_ARN", cfg.Storage.RoleARN)
	cfg.Storage.Bucket = EnvOr("NPULSE_S3_BUCKET", cfg.Storage.Bucket)

	cfg.Publish.Brokers = envListOr("NPULSE_KAFKA_BROKERS", cfg.Publish.Brokers)
	cfg.Publish.Topic = EnvOr("NPULSE_KAFKA_TOPIC", cfg.Publish.Topic)

	cfg.Server.Address = EnvOr("NPULSE_HTTP_ADDR", cfg.Server.Address)
}
