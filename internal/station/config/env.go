package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a .env file
// from the working directory first if one exists.
//
// Recognized variables:
//
//	STATION_SERVER_ADDR  central server host:port
//	STATION_ID           station identifier
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("STATION_SERVER_ADDR"); v != "" {
		config.ServerAddr = v
	}
	if v := os.Getenv("STATION_ID"); v != "" {
		config.StationID = v
	}
}
