// Package jobs holds the server's periodic cron jobs.
package jobs

import (
	"context"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/service"
)

// StationSweepJob flips active stations back to offline once they have been
// unseen longer than the configured idle timeout. Scheduled by the app on a
// one-minute cadence.
type StationSweepJob struct {
	svc         *service.RentalService
	idleTimeout time.Duration
	logger      logging.Logger
}

func NewStationSweepJob(svc *service.RentalService, idleTimeout time.Duration, logger logging.Logger) *StationSweepJob {
	return &StationSweepJob{
		svc:         svc,
		idleTimeout: idleTimeout,
		logger:      logger.With("module", "station_sweep"),
	}
}

func (j *StationSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	swept, err := j.svc.SweepIdleStations(ctx, j.idleTimeout)
	if err != nil {
		j.logger.Error(ctx, "station sweep failed", "error", err)
		return
	}
	if swept > 0 {
		j.logger.Info(ctx, "idle stations marked offline", "count", swept)
	}
}
