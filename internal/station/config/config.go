// Package config handles configuration for the station component:
// defaults, .env overlay, JSON overlay, and command-line flags, in that
// order of precedence.
package config

import "time"

// Config holds runtime settings for a kiosk station.
//
// Fields:
//   - ServerAddr: host:port of the central server.
//   - StationID: stable identifier reported on LOGIN.
//   - RequestTimeout: per-request network deadline; a hung server surfaces
//     as a failed call instead of freezing the session tick.
//   - SyncInterval: period between DEDUCT_TIME balance flushes.
//   - GracePeriod: tolerated continuous absence before the session ends.
//   - ScanWindow: how long the wake-up face scan runs before falling back
//     to manual login.
//   - MatchTolerance: maximum feature-vector distance counted as a match.
//   - PricePerMinute: rental rate shown by the payment flow.
type Config struct {
	ServerAddr     string
	StationID      string
	RequestTimeout time.Duration
	SyncInterval   time.Duration
	GracePeriod    time.Duration
	ScanWindow     time.Duration
	MatchTolerance float64
	PricePerMinute float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "127.0.0.1:5000"
	c.StationID = "STATION_01"
	c.RequestTimeout = 5 * time.Second
	c.SyncInterval = 5 * time.Second
	c.GracePeriod = 2 * time.Second
	c.ScanWindow = 3 * time.Second
	c.MatchTolerance = 0.6
	c.PricePerMinute = 0.5
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, an optional JSON file, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
