package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/dbx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/migrations"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/stations"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/users"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stations(db dbx.DBTX) stations.Repository {
	return stations.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
