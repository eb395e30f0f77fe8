// Package config provides configuration management for the option tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "option-tool/internal/errors"
)

// Band modes for the shaded spread band on charts.
const (
	BandPercent  = "percent"
	BandAbsolute = "absolute"
)

// Config holds all application configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Chart    ChartConfig    `mapstructure:"chart"`
	UI       UIConfig       `mapstructure:"ui"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DefaultsConfig holds the inputs used when a command does not set them.
type DefaultsConfig struct {
	Underlying  float64 `mapstructure:"underlying"`
	SpreadPct   float64 `mapstructure:"spread_pct"`
	SweepPoints int     `mapstructure:"sweep_points"`
}

// ChartConfig holds terminal chart configuration.
type ChartConfig struct {
	BandMode string `mapstructure:"band_mode"` // percent, absolute
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled   bool   `mapstructure:"color_enabled"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr      string  `mapstructure:"addr"`
	Mode      string  `mapstructure:"mode"`       // debug, release
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second, 0 disables
	Burst     int     `mapstructure:"burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/option-tool"
	}
	return filepath.Join(home, ".config", "option-tool")
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	v := viper.New()
	setDefaults(v, DefaultConfigDir())
	// defaults only, cannot fail
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("defaults.underlying", 100.0)
	v.SetDefault("defaults.spread_pct", 10.0)
	v.SetDefault("defaults.sweep_points", 400)

	v.SetDefault("chart.band_mode", BandPercent)
	v.SetDefault("chart.width", 72)
	v.SetDefault("chart.height", 20)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.currency_symbol", "$")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.burst", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "option-tool.log"))
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age", 30)
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is replaced by a commented template and defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	// .env is optional
	_ = godotenv.Load(filepath.Join(configDir, ".env"))
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// best effort; a read-only home still gets defaults
		_ = createTemplateConfig(configDir)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setFloat(&cfg.Defaults.Underlying, "OPTION_TOOL_UNDERLYING")
	setFloat(&cfg.Defaults.SpreadPct, "OPTION_TOOL_SPREAD_PCT")
	setInt(&cfg.Defaults.SweepPoints, "OPTION_TOOL_SWEEP_POINTS")
	setStr(&cfg.Chart.BandMode, "OPTION_TOOL_BAND_MODE")
	setStr(&cfg.UI.CurrencySymbol, "OPTION_TOOL_CURRENCY")
	setStr(&cfg.Server.Addr, "OPTION_TOOL_ADDR")
	setStr(&cfg.Server.Mode, "OPTION_TOOL_SERVER_MODE")
	setStr(&cfg.Logging.Level, "OPTION_TOOL_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Defaults.Underlying <= 0 {
		return fmt.Errorf("%w: defaults.underlying must be positive", apperrors.ErrConfigInvalid)
	}
	if c.Defaults.SpreadPct < 0 || c.Defaults.SpreadPct > 100 {
		return fmt.Errorf("%w: defaults.spread_pct must be between 0 and 100", apperrors.ErrConfigInvalid)
	}
	if c.Defaults.SweepPoints < 2 {
		return fmt.Errorf("%w: defaults.sweep_points must be at least 2", apperrors.ErrConfigInvalid)
	}
	if c.Chart.BandMode != BandPercent && c.Chart.BandMode != BandAbsolute {
		return fmt.Errorf("%w: invalid chart.band_mode: %s (must be '%s' or '%s')",
			apperrors.ErrConfigInvalid, c.Chart.BandMode, BandPercent, BandAbsolute)
	}
	if c.Chart.Width < 10 || c.Chart.Height < 5 {
		return fmt.Errorf("%w: chart must be at least 10x5", apperrors.ErrConfigInvalid)
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("%w: invalid server.mode: %s (must be 'debug' or 'release')", apperrors.ErrConfigInvalid, c.Server.Mode)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rate_limit must not be negative", apperrors.ErrConfigInvalid)
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("%w: server.burst must be at least 1 when rate limiting", apperrors.ErrConfigInvalid)
	}
	return nil
}
