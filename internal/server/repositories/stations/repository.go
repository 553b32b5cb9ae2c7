package stations

import (
	"context"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

// Repository is the stations table contract.
type Repository interface {
	Register(ctx context.Context, station *models.Station) error
	Get(ctx context.Context, id string) (*models.Station, error)

	// Activate flips the station to active and stamps last_seen.
	Activate(ctx context.Context, id string, seenAt time.Time) error

	// SweepIdle flips active stations whose last_seen is older than cutoff
	// back to offline and returns how many rows changed.
	SweepIdle(ctx context.Context, cutoff time.Time) (int64, error)
}
