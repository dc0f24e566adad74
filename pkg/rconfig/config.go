// Package rconfig loads runtime tuning knobs (spawner pool sizes, logging,
// metrics) from a YAML file or defaults, independent of any
// particular Model type.
package rconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the subset of runtime behavior that is safe to tune without
// recompiling: spawner sizing, logging, and whether to expose metrics.
type Config struct {
	ThreadPoolSize int          `yaml:"thread_pool_size"`
	Logging        LoggingConfig `yaml:"logging"`
	Metrics        MetricsConfig `yaml:"metrics"`
}

// LoggingConfig mirrors rlog.Config in YAML-friendly form.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	JSONOutput bool   `yaml:"json_output"`
}

// MetricsConfig controls whether and where the Prometheus endpoint listens.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration a Runtime uses when nothing else is
// supplied.
func Default() Config {
	return Config{
		ThreadPoolSize: 8,
		Logging:        LoggingConfig{Level: "info"},
		Metrics:        MetricsConfig{Enabled: false, Addr: ":9090"},
	}
}

// Load reads and parses a YAML config file, filling in defaults for any
// field the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}
