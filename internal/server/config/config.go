// Package config handles configuration for the server component:
// defaults, .env overlay, JSON overlay, and command-line flags, in that
// order of precedence.
package config

import "time"

// Config holds runtime settings for the central server.
//
// Fields:
//   - EndpointAddr: TCP bind address for the station protocol.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects in-memory storage.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - SessionTokenValidityDuration: lifetime of issued session tokens.
//   - RootUsername / RootPassword: credentials for the bootstrapped root user.
//   - StationIdleTimeout: how long an active station may stay unseen before
//     the sweep job flips it to offline.
//   - MetricsAddr: bind address for the Prometheus endpoint; empty disables it.
type Config struct {
	EndpointAddr                 string
	DatabaseDSN                  string
	SecretKey                    string
	SessionTokenValidityDuration time.Duration
	RootUsername                 string
	RootPassword                 string
	StationIdleTimeout           time.Duration
	MetricsAddr                  string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and root password must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionTokenValidityDuration = 8 * time.Hour
	c.RootUsername = "root"
	c.RootPassword = "root"
	c.StationIdleTimeout = 10 * time.Minute
	c.MetricsAddr = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (.env aware), an optional JSON file, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
