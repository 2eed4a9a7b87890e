// Package config provides configuration loading and management for
// cardiofiber. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"cardiofiber/pkg/ldrb"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Angles holds the fiber/sheet angle parameters in degrees. The LV
	// values are always used; RV and septum values are optional and each
	// one independently defaults to its LV counterpart when omitted.
	Angles struct {
		AlphaEndoLV float64 `yaml:"alphaEndoLv"`
		AlphaEpiLV  float64 `yaml:"alphaEpiLv"`
		BetaEndoLV  float64 `yaml:"betaEndoLv"`
		BetaEpiLV   float64 `yaml:"betaEpiLv"`

		AlphaEndoRV *float64 `yaml:"alphaEndoRv,omitempty"`
		AlphaEpiRV  *float64 `yaml:"alphaEpiRv,omitempty"`
		BetaEndoRV  *float64 `yaml:"betaEndoRv,omitempty"`
		BetaEpiRV   *float64 `yaml:"betaEpiRv,omitempty"`

		AlphaEndoSept *float64 `yaml:"alphaEndoSept,omitempty"`
		AlphaEpiSept  *float64 `yaml:"alphaEpiSept,omitempty"`
		BetaEndoSept  *float64 `yaml:"betaEndoSept,omitempty"`
		BetaEpiSept   *float64 `yaml:"betaEpiSept,omitempty"`
	} `yaml:"angles"`

	// Tolerances control the numerical thresholds of the computation.
	Tolerances struct {
		// Point is the rule engine tolerance deciding whether a depth
		// value defines a local frame.
		Point float64 `yaml:"point"`

		// Region is the coarser tolerance used for angle-region
		// classification.
		Region float64 `yaml:"region"`
	} `yaml:"tolerances"`

	// Processing parameters.
	Processing struct {
		// Workers is the number of goroutines used for field assembly.
		Workers int `yaml:"workers"`
	} `yaml:"processing"`

	// Output parameters.
	Output struct {
		// LogLevel controls logging verbosity (debug, info, warn, error).
		LogLevel string `yaml:"logLevel"`

		// LogFile, when set, duplicates logs to a rotating file.
		LogFile string `yaml:"logFile"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Angles.AlphaEndoLV = ldrb.DefaultAlphaEndo
	cfg.Angles.AlphaEpiLV = ldrb.DefaultAlphaEpi
	cfg.Angles.BetaEndoLV = ldrb.DefaultBetaEndo
	cfg.Angles.BetaEpiLV = ldrb.DefaultBetaEpi

	cfg.Tolerances.Point = ldrb.DefaultPointTol
	cfg.Tolerances.Region = ldrb.DefaultRegionTol

	cfg.Processing.Workers = runtime.NumCPU()

	cfg.Output.LogLevel = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// ComputeOptions translates the configuration into the computational core's
// option set. The progress observer is left nil for the caller to attach.
func (c *Config) ComputeOptions() ldrb.Options {
	opts := ldrb.DefaultOptions()

	opts.Angles = ldrb.Angles{
		AlphaEndoLV: c.Angles.AlphaEndoLV,
		AlphaEpiLV:  c.Angles.AlphaEpiLV,
		BetaEndoLV:  c.Angles.BetaEndoLV,
		BetaEpiLV:   c.Angles.BetaEpiLV,

		AlphaEndoRV: c.Angles.AlphaEndoRV,
		AlphaEpiRV:  c.Angles.AlphaEpiRV,
		BetaEndoRV:  c.Angles.BetaEndoRV,
		BetaEpiRV:   c.Angles.BetaEpiRV,

		AlphaEndoSept: c.Angles.AlphaEndoSept,
		AlphaEpiSept:  c.Angles.AlphaEpiSept,
		BetaEndoSept:  c.Angles.BetaEndoSept,
		BetaEpiSept:   c.Angles.BetaEpiSept,
	}
	opts.PointTol = c.Tolerances.Point
	opts.RegionTol = c.Tolerances.Region
	opts.Workers = c.Processing.Workers

	return opts
}
