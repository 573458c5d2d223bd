// Package config holds runtime configuration: environment variables for the
// API client plus a YAML file describing the monitored stops.
package config

import "os"

// Config holds application configuration from environment variables.
type Config struct {
	BaseURL   string
	APIKey    string // optional; keyless requests run at a reduced quota
	StopsFile string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		BaseURL:   envStr("MBTA_BASE_URL", "https://api-v3.mbta.com"),
		APIKey:    envStr("MBTA_API_KEY", ""),
		StopsFile: envStr("MBTA_STOPS_FILE", "stops.yml"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
