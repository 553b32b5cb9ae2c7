package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a .env file
// from the working directory first if one exists.
//
// Recognized variables:
//
//	RENTAL_ADDRESS        TCP bind address
//	RENTAL_DATABASE_DSN   PostgreSQL DSN
//	RENTAL_SECRET_KEY     session token HMAC secret
//	RENTAL_TOKEN_MINUTES  session token lifetime, minutes
//	RENTAL_ROOT_USER      bootstrap root username
//	RENTAL_ROOT_PASSWORD  bootstrap root password
//	RENTAL_IDLE_MINUTES   station idle timeout, minutes
//	RENTAL_METRICS_ADDR   Prometheus bind address
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("RENTAL_ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("RENTAL_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("RENTAL_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("RENTAL_TOKEN_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.SessionTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("RENTAL_ROOT_USER"); v != "" {
		config.RootUsername = v
	}
	if v := os.Getenv("RENTAL_ROOT_PASSWORD"); v != "" {
		config.RootPassword = v
	}
	if v := os.Getenv("RENTAL_IDLE_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.StationIdleTimeout = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("RENTAL_METRICS_ADDR"); v != "" {
		config.MetricsAddr = v
	}
}
