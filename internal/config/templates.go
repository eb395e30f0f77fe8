package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Option Tool Configuration

[defaults]
# Underlying price used when --underlying is not given
underlying = 100.0
# Price sweep half-width as a percentage of the underlying
spread_pct = 10.0
# Number of expiry prices sampled across the sweep
sweep_points = 400

[chart]
# Shaded band convention:
#   "percent"  - underlying * (1 +/- spread_pct/100), same as the sweep
#   "absolute" - underlying +/- spread_pct
band_mode = "percent"
width = 72
height = 20

[ui]
# Enable colored output
color_enabled = true
# Currency symbol for amounts
currency_symbol = "$"

[server]
addr = ":8080"
# gin mode: debug or release
mode = "release"
# token bucket for /api routes; requests per second (0 disables) and burst size
rate_limit = 50.0
burst = 100

[logging]
# debug, info, warn, error
level = "info"
console = true
file = false
max_size = 100
max_backups = 7
max_age = 30
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
