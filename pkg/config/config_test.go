package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiofiber/pkg/ldrb"
)

// TestDefaultConfig ensures the defaults match the core's canonical values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ldrb.DefaultAlphaEndo, cfg.Angles.AlphaEndoLV)
	assert.Equal(t, ldrb.DefaultAlphaEpi, cfg.Angles.AlphaEpiLV)
	assert.Equal(t, ldrb.DefaultBetaEndo, cfg.Angles.BetaEndoLV)
	assert.Equal(t, ldrb.DefaultBetaEpi, cfg.Angles.BetaEpiLV)
	assert.Nil(t, cfg.Angles.AlphaEndoRV, "RV angles default to unset")
	assert.Nil(t, cfg.Angles.BetaEndoSept, "septal angles default to unset")

	assert.Equal(t, ldrb.DefaultPointTol, cfg.Tolerances.Point)
	assert.Equal(t, ldrb.DefaultRegionTol, cfg.Tolerances.Region)
	assert.Greater(t, cfg.Processing.Workers, 0)
	assert.Equal(t, "info", cfg.Output.LogLevel)
}

// TestLoadConfigMissingFile returns defaults when the file does not exist.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

// TestConfigRoundTrip saves and reloads a modified configuration.
func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "cardiofiber.yaml")

	cfg := DefaultConfig()
	cfg.Angles.AlphaEndoLV = 60
	sept := 12.5
	cfg.Angles.AlphaEndoSept = &sept
	cfg.Processing.Workers = 3
	cfg.Output.LogLevel = "debug"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, loaded.Angles.AlphaEndoLV)
	require.NotNil(t, loaded.Angles.AlphaEndoSept)
	assert.Equal(t, 12.5, *loaded.Angles.AlphaEndoSept)
	assert.Nil(t, loaded.Angles.AlphaEndoRV, "unset optional angles stay unset")
	assert.Equal(t, 3, loaded.Processing.Workers)
	assert.Equal(t, "debug", loaded.Output.LogLevel)
}

// TestLoadConfigInvalidYAML surfaces parse failures.
func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("angles: [not a map"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestCreateDefaultConfigFile writes a loadable file.
func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

// TestComputeOptions maps configuration onto the core options, including
// the optional per-field angle fallbacks.
func TestComputeOptions(t *testing.T) {
	cfg := DefaultConfig()
	rv := 30.0
	cfg.Angles.AlphaEndoRV = &rv
	cfg.Tolerances.Region = 5e-3
	cfg.Processing.Workers = 2

	opts := cfg.ComputeOptions()
	assert.Equal(t, 5e-3, opts.RegionTol)
	assert.Equal(t, 2, opts.Workers)

	resolved := opts.Angles.Resolve()
	assert.Equal(t, 30.0, resolved.RV.AlphaEndo)
	assert.Equal(t, ldrb.DefaultAlphaEpi, resolved.RV.AlphaEpi, "unset RV field falls back to LV")
	assert.Equal(t, ldrb.DefaultAlphaEndo, resolved.Sept.AlphaEndo)
}
