// Package repomanager groups the repository constructors behind one
// interface so the service layer can run over postgres or in-memory storage.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/dbx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/stations"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Stations(db dbx.DBTX) stations.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
