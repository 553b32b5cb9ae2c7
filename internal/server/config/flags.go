package config

import (
	"flag"
	"os"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   TCP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN (empty selects in-memory storage)
//	-s string   session token HMAC secret
//	-t int      session token validity, minutes
//	-ru string  bootstrap root username
//	-rp string  bootstrap root password
//	-i int      station idle timeout, minutes
//	-m string   Prometheus bind address (empty disables)
//
// Args are filtered through flagx.FilterArgs first so this parser does not
// collide with the -c/-config flags handled elsewhere.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-ru", "-rp", "-i", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session token validity (in minutes)")

	fs.StringVar(&config.RootUsername, "ru", config.RootUsername, "bootstrap root username")
	fs.StringVar(&config.RootPassword, "rp", config.RootPassword, "bootstrap root password")

	idleMinutes := fs.Int("i", int(config.StationIdleTimeout.Minutes()), "station idle timeout (in minutes)")

	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "prometheus metrics address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.StationIdleTimeout = time.Duration(*idleMinutes) * time.Minute
}
