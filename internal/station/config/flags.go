package config

import (
	"flag"
	"os"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/flagx"
)

// parseFlags populates selected station Config fields from command-line
// flags.
//
// Supported flags:
//
//	-a string   central server address (host:port)
//	-id string  station identifier
//	-t int      per-request timeout, seconds
//	-y int      balance sync interval, seconds
//	-p float    price per rented minute
//
// Args are filtered through flagx.FilterArgs so this parser does not
// collide with the -c/-config flags handled elsewhere.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-id", "-t", "-y", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerAddr, "a", config.ServerAddr, "central server address")
	fs.StringVar(&config.StationID, "id", config.StationID, "station identifier")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	syncInterval := fs.Int("y", int(config.SyncInterval.Seconds()), "balance sync interval (in seconds)")

	fs.Float64Var(&config.PricePerMinute, "p", config.PricePerMinute, "price per rented minute")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	config.SyncInterval = time.Duration(*syncInterval) * time.Second
}
