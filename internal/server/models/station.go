package models

import "time"

// Station statuses. A station flips to active on every successful login and
// is swept back to offline when it has not been seen for a while.
const (
	StationOffline = "offline"
	StationActive  = "active"
	StationBanned  = "banned"
)

type Station struct {
	ID       string
	Name     string
	Status   string
	LastSeen time.Time
}
