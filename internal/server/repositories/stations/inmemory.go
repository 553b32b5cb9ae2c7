package stations

import (
	"context"
	"sync"
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

// InMemoryRepository keeps stations in a map guarded by a mutex. Used by
// tests and by the server when no database DSN is configured.
type InMemoryRepository struct {
	mu       sync.Mutex
	stations map[string]*models.Station
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{stations: make(map[string]*models.Station)}
}

func (r *InMemoryRepository) Register(ctx context.Context, station *models.Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stations[station.ID]; ok {
		return common.ErrAlreadyExists
	}
	r.stations[station.ID] = &models.Station{
		ID:     station.ID,
		Name:   station.Name,
		Status: models.StationOffline,
	}
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*models.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *station
	return &clone, nil
}

func (r *InMemoryRepository) Activate(ctx context.Context, id string, seenAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[id]
	if !ok {
		station = &models.Station{ID: id}
		r.stations[id] = station
	}
	station.Status = models.StationActive
	station.LastSeen = seenAt
	return nil
}

func (r *InMemoryRepository) SweepIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var swept int64
	for _, station := range r.stations {
		if station.Status == models.StationActive && station.LastSeen.Before(cutoff) {
			station.Status = models.StationOffline
			swept++
		}
	}
	return swept, nil
}
