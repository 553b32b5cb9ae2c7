package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/repomanager"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/service"
)

func TestStationSweepJob(t *testing.T) {
	ctx := context.Background()
	repos := repomanager.NewInMemoryRepositoryManager()
	svc := service.NewRentalService(nil, repos)

	if err := svc.RegisterStation(ctx, "ST-1", "Lobby"); err != nil {
		t.Fatalf("RegisterStation error: %v", err)
	}
	if err := repos.Stations(nil).Activate(ctx, "ST-1", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Activate error: %v", err)
	}

	job := NewStationSweepJob(svc, 10*time.Minute, logging.NewNopLogger())
	job.Run()

	station, err := svc.StationByID(ctx, "ST-1")
	if err != nil {
		t.Fatalf("StationByID error: %v", err)
	}
	if station.Status != models.StationOffline {
		t.Fatalf("expected swept station to be offline, got %q", station.Status)
	}

	// the job must tolerate an empty fleet
	if _, err := svc.StationByID(ctx, "ghost"); err != common.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown station, got %v", err)
	}
	job.Run()
}
