package config

import "time"

// NTPConfig controls the optional NTP correction layer.
type NTPConfig struct {
	// Enabled turns the sntp source decorator on.
	Enabled bool
	// Servers queried during a sync.
	Servers []string
	// QueryTimeout bounds each individual server query.
	QueryTimeout time.Duration
	// MinQueryInterval rate-limits sync attempts.
	MinQueryInterval time.Duration
}

// ClockConfig is the top-level configuration for the clock stack.
type ClockConfig struct {
	NTP *NTPConfig
}

var defaultClockConfig = &ClockConfig{
	NTP: &NTPConfig{
		Enabled:          false,
		Servers:          []string{"0.pool.ntp.org", "1.pool.ntp.org", "2.pool.ntp.org"},
		QueryTimeout:     10 * time.Second,
		MinQueryInterval: 5 * time.Minute,
	},
}

// DefaultClockConfig returns the built-in defaults.
func DefaultClockConfig() *ClockConfig {
	return defaultClockConfig
}
