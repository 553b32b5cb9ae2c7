package repomanager

import (
	"context"
	"database/sql"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/dbx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/stations"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out the same repository instances for
// every call, since there is no per-transaction handle to thread through.
type InMemoryRepositoryManager struct {
	users    *users.InMemoryRepository
	stations *stations.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewInMemoryRepository(),
		stations: stations.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Stations(db dbx.DBTX) stations.Repository {
	return m.stations
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
