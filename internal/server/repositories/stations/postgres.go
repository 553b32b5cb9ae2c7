package stations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/dbx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Register(ctx context.Context, station *models.Station) error {
	query :=
		`INSERT INTO stations (id, name, status)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, station.ID, station.Name, models.StationOffline)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Station, error) {
	query :=
		`SELECT id, name, status, last_seen FROM stations
		 WHERE id = $1
		 `

	station := &models.Station{}
	var lastSeen sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&station.ID, &station.Name, &station.Status, &lastSeen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastSeen.Valid {
		station.LastSeen = lastSeen.Time
	}

	return station, nil
}

// Activate upserts so a login from a station the admin never registered still
// leaves an audit trail, matching the original server's permissive behavior.
func (r *PostgresRepository) Activate(ctx context.Context, id string, seenAt time.Time) error {
	query :=
		`INSERT INTO stations (id, name, status, last_seen)
		 VALUES ($1, '', $2, $3)
		 ON CONFLICT (id) DO UPDATE
		 SET status = $2, last_seen = $3
		 `

	_, err := r.db.ExecContext(ctx, query, id, models.StationActive, seenAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SweepIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	query :=
		`UPDATE stations
		 SET status = $1
		 WHERE status = $2 AND last_seen < $3
		 `

	res, err := r.db.ExecContext(ctx, query, models.StationOffline, models.StationActive, cutoff)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
