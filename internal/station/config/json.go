package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/flagx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Interval fields use timex.Duration, which accepts both strings like "5s"
// and integer nanoseconds.
type JsonConfig struct {
	ServerAddr     string         `json:"server_addr"`
	StationID      string         `json:"station_id"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SyncInterval   timex.Duration `json:"sync_interval"`
	GracePeriod    timex.Duration `json:"grace_period"`
	ScanWindow     timex.Duration `json:"scan_window"`
	MatchTolerance float64        `json:"match_tolerance"`
	PricePerMinute float64        `json:"price_per_minute"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into config. If no file is named, nothing happens.
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

	config.ServerAddr = c.ServerAddr
	config.StationID = c.StationID
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	config.SyncInterval = time.Duration(c.SyncInterval.Duration)
	config.GracePeriod = time.Duration(c.GracePeriod.Duration)
	config.ScanWindow = time.Duration(c.ScanWindow.Duration)
	config.MatchTolerance = c.MatchTolerance
	config.PricePerMinute = c.PricePerMinute
}
