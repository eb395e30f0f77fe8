package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "option-tool/internal/errors"
)

func TestLoadCreatesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Defaults.Underlying)
	assert.Equal(t, 10.0, cfg.Defaults.SpreadPct)
	assert.Equal(t, 400, cfg.Defaults.SweepPoints)
	assert.Equal(t, BandPercent, cfg.Chart.BandMode)
	assert.Equal(t, "$", cfg.UI.CurrencySymbol)

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err, "template should be written")

	// the template itself must load cleanly
	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Defaults, again.Defaults)
}

func TestLoadFileValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[defaults]
underlying = 250.0
spread_pct = 20.0

[chart]
band_mode = "absolute"
`), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Defaults.Underlying)
	assert.Equal(t, 20.0, cfg.Defaults.SpreadPct)
	assert.Equal(t, 400, cfg.Defaults.SweepPoints)
	assert.Equal(t, BandAbsolute, cfg.Chart.BandMode)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPTION_TOOL_SPREAD_PCT", "15")
	t.Setenv("OPTION_TOOL_CURRENCY", "₹")
	t.Setenv("OPTION_TOOL_SWEEP_POINTS", "not-a-number")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 15.0, cfg.Defaults.SpreadPct)
	assert.Equal(t, "₹", cfg.UI.CurrencySymbol)
	assert.Equal(t, 400, cfg.Defaults.SweepPoints, "unparseable values are ignored")
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[chart]
band_mode = "sideways"
`), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"underlying", func(c *Config) { c.Defaults.Underlying = 0 }},
		{"spread", func(c *Config) { c.Defaults.SpreadPct = 150 }},
		{"points", func(c *Config) { c.Defaults.SweepPoints = 1 }},
		{"chart size", func(c *Config) { c.Chart.Width = 3 }},
		{"server mode", func(c *Config) { c.Server.Mode = "test" }},
		{"rate limit", func(c *Config) { c.Server.RateLimit = -1 }},
		{"burst", func(c *Config) { c.Server.Burst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), apperrors.ErrConfigInvalid)
		})
	}
}
