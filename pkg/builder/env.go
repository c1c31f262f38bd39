package builder

import "github.com/joeydtaylor/npulse/pkg/internal/config"

type Config = config.Config

// LoadConfig reads the YAML file at path (defaults when empty) with NPULSE_* overrides.
func LoadConfig(path string) (*config.Config, error) {
	return config.Load(path)
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *config.Config {
	return config.Default()
}

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	return config.EnvOr(key, def)
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	return config.EnvIntOr(key, def)
}
