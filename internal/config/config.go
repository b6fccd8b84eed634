// Package config holds typeforge's process configuration: synthesis search
// limits, the execution context defaults, provenance tracking, and logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"typeforge/internal/logging"
)

// Config holds the full typeforge process configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// CatalogPath is the JSON CatalogSpec file that facade.NewEngineFromFile
	// (via catalog.FromSpec) reads at startup.
	CatalogPath string `yaml:"catalog_path"`

	Synth      SynthConfig      `yaml:"synth"`
	Execution  ExecutionConfig  `yaml:"execution"`
	Provenance ProvenanceConfig `yaml:"provenance"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SynthConfig configures the synthesis engine's search/planning defaults
// (spec.md §4.3/§4.4).
type SynthConfig struct {
	MaxCost                float64 `yaml:"max_cost"`
	MaxResults             int     `yaml:"max_results"`
	PreferMultiarg         bool    `yaml:"prefer_multiarg"`
	CostAware              bool    `yaml:"cost_aware"`
	MaxPreferenceCostRatio float64 `yaml:"max_preference_cost_ratio"`
}

// ExecutionConfig configures the default exec.Context built at process
// startup (spec.md §4.5/§6.4).
type ExecutionConfig struct {
	Endpoint          string            `yaml:"endpoint"`
	NamespacePrefixes []string          `yaml:"namespace_prefixes"`
	Headers           map[string]string `yaml:"headers"`
	Constants         map[string]float64 `yaml:"constants"`
	HTTPTimeout       string            `yaml:"http_timeout"`
}

// ProvenanceConfig configures provenance tracking and serialisation
// (spec.md §4.6/§6.5).
type ProvenanceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // json, turtle, jsonld
}

// DefaultConfig returns typeforge's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:        "typeforge",
		Version:     "0.1.0",
		CatalogPath: "catalog.typeforge",

		Synth: SynthConfig{
			MaxCost:                100,
			MaxResults:             5,
			PreferMultiarg:         true,
			CostAware:              true,
			MaxPreferenceCostRatio: 2.0,
		},

		Execution: ExecutionConfig{
			Headers: map[string]string{},
			Constants: map[string]float64{
				"emission_factor": 2.5,
				"efficiency":      0.35,
				"kWh_to_CO2":      0.5,
			},
			HTTPTimeout: "30s",
		},

		Provenance: ProvenanceConfig{
			Enabled: false,
			Format:  "json",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "typeforge.log",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	logging.BootDebug("loading config from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Boot("config file not found, using defaults: %s", path)
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		logging.BootError("failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		logging.BootError("failed to parse config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	logging.Boot("config loaded: catalog=%s max_cost=%.1f", cfg.CatalogPath, cfg.Synth.MaxCost)
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("TYPEFORGE_CATALOG_PATH"); path != "" {
		c.CatalogPath = path
	}
	if endpoint := os.Getenv("TYPEFORGE_ENDPOINT"); endpoint != "" {
		c.Execution.Endpoint = endpoint
	}
	if level := os.Getenv("TYPEFORGE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if raw := os.Getenv("TYPEFORGE_MAX_COST"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Synth.MaxCost = v
		}
	}
	if raw := os.Getenv("TYPEFORGE_PROVENANCE_ENABLED"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			c.Provenance.Enabled = v
		}
	}
	if format := os.Getenv("TYPEFORGE_PROVENANCE_FORMAT"); format != "" {
		c.Provenance.Format = format
	}
}

// GetHTTPTimeout returns the execution context's HTTP timeout as a
// duration, defaulting to 30s on an unparseable value.
func (c *Config) GetHTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.Execution.HTTPTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ValidProvenanceFormats lists the supported provenance serialisation
// formats (spec.md §6.5).
var ValidProvenanceFormats = []string{"json", "turtle", "jsonld"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("config: catalog_path must not be empty")
	}
	if c.Synth.MaxCost <= 0 {
		return fmt.Errorf("config: synth.max_cost must be positive")
	}
	if c.Provenance.Enabled {
		valid := false
		for _, f := range ValidProvenanceFormats {
			if c.Provenance.Format == f {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("config: provenance.format %q is not one of %v", c.Provenance.Format, ValidProvenanceFormats)
		}
	}
	return nil
}
