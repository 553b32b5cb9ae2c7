package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd",
		"-a", ":7000",
		"-d", "postgres://localhost/rental",
		"-s", "flagsecret",
		"-t", "120",
		"-ru", "admin",
		"-rp", "hunter2",
		"-i", "15",
		"-m", ":9090",
	}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddr, ":7000")
	assert.Equal(t, c.DatabaseDSN, "postgres://localhost/rental")
	assert.Equal(t, c.SecretKey, "flagsecret")
	assert.Equal(t, c.SessionTokenValidityDuration, 120*time.Minute)
	assert.Equal(t, c.RootUsername, "admin")
	assert.Equal(t, c.RootPassword, "hunter2")
	assert.Equal(t, c.StationIdleTimeout, 15*time.Minute)
	assert.Equal(t, c.MetricsAddr, ":9090")
}

func TestParseFlags_KeepsDefaultsWithoutFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-unrelated", "value"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.EndpointAddr, ":5000")
	assert.Equal(t, c.SessionTokenValidityDuration, 8*time.Hour)
}
