package stations

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestRegister(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+stations\s*\(id,\s*name,\s*status\)`).
		WithArgs("ST-1", "Lobby", models.StationOffline).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Register(context.Background(), &models.Station{ID: "ST-1", Name: "Lobby"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+stations`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Register(context.Background(), &models.Station{ID: "ST-1"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	seen := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "status", "last_seen"}).
		AddRow("ST-1", "Lobby", models.StationActive, seen)
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*name,\s*status,\s*last_seen\s+FROM\s+stations\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ST-1").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "ST-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Status != models.StationActive || !got.LastSeen.Equal(seen) {
		t.Fatalf("unexpected station: %+v", got)
	}
}

func TestGet_NeverSeen(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// a registered but never-activated station has NULL last_seen
	rows := sqlmock.NewRows([]string{"id", "name", "status", "last_seen"}).
		AddRow("ST-2", "Backroom", models.StationOffline, nil)
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*name,\s*status,\s*last_seen`).
		WithArgs("ST-2").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "ST-2")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !got.LastSeen.IsZero() {
		t.Fatalf("expected zero last_seen, got %v", got.LastSeen)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*name,\s*status,\s*last_seen`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestActivate_Upserts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	seen := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+stations.*ON\s+CONFLICT\s*\(id\)\s*DO\s+UPDATE`).
		WithArgs("ST-1", models.StationActive, seen).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Activate(context.Background(), "ST-1", seen); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
}

func TestSweepIdle(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cutoff := time.Date(2026, 2, 1, 8, 50, 0, 0, time.UTC)
	mock.ExpectExec(`(?s)UPDATE\s+stations\s+SET\s+status\s*=\s*\$1\s+WHERE\s+status\s*=\s*\$2\s+AND\s+last_seen\s*<\s*\$3`).
		WithArgs(models.StationOffline, models.StationActive, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	swept, err := repo.SweepIdle(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("SweepIdle error: %v", err)
	}
	if swept != 3 {
		t.Fatalf("expected 3 swept stations, got %d", swept)
	}
}
