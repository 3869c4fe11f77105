// Package config loads evaluation run configuration from a YAML file.
// Flags handled by the CLI override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration
type Config struct {
	// GraphPath points at the edge-list file
	GraphPath string `yaml:"graph"`
	// LabelsPath points at the ground-truth community file
	LabelsPath string `yaml:"labels"`
	// Compression is auto, none, gzip or snappy
	Compression string `yaml:"compression"`
	// SeedCount is the number of seed trials to run
	SeedCount int `yaml:"seed_count"`
	// Strategy is random or maxdeg
	Strategy string `yaml:"strategy"`
	// Workers > 1 runs seed trials concurrently
	Workers int `yaml:"workers"`
	// RandomSeed fixes the sampler's random source
	RandomSeed int64 `yaml:"random_seed"`
	// MaxCycles caps grow+prune cycles per trial (0 = uncapped)
	MaxCycles int `yaml:"max_cycles"`
	// KeepCommunities includes member lists in the report
	KeepCommunities bool `yaml:"keep_communities"`
	// LogLevel is debug, info, warn or error
	LogLevel string `yaml:"log_level"`
	// MetricsAddr exposes /metrics on this address while the run executes
	MetricsAddr string `yaml:"metrics_addr"`
	// Output is text or json
	Output string `yaml:"output"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Compression: "auto",
		SeedCount:   20,
		Strategy:    "random",
		Workers:     1,
		RandomSeed:  42,
		LogLevel:    "info",
		Output:      "text",
	}
}

// Load reads a YAML configuration file on top of the defaults.
// Zero-valued fields in the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores defaults for fields the file left empty.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Compression == "" {
		c.Compression = defaults.Compression
	}
	if c.SeedCount == 0 {
		c.SeedCount = defaults.SeedCount
	}
	if c.Strategy == "" {
		c.Strategy = defaults.Strategy
	}
	if c.Workers == 0 {
		c.Workers = defaults.Workers
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
}
