package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/flagx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Interval fields use timex.Duration, which accepts both strings like "10m"
// and integer nanoseconds. After unmarshalling, values are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	RootUsername                 string         `json:"root_username"`
	RootPassword                 string         `json:"root_password"`
	StationIdleTimeout           timex.Duration `json:"station_idle_timeout"`
	MetricsAddr                  string         `json:"metrics_addr"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into config. If no file is named, nothing happens.
// An unreadable or invalid file panics, as misconfiguration should stop
// startup rather than run with silent defaults.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionTokenValidityDuration = time.Duration(c.SessionTokenValidityDuration.Duration)
	config.RootUsername = c.RootUsername
	config.RootPassword = c.RootPassword
	config.StationIdleTimeout = time.Duration(c.StationIdleTimeout.Duration)
	config.MetricsAddr = c.MetricsAddr
}
