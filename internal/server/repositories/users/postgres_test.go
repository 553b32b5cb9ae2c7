package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
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

var userColumns = []string{"id", "username", "password_hash", "full_name", "role", "time_balance", "face_encoding", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(id,\s*username,\s*password_hash,\s*full_name,\s*role,\s*time_balance,\s*face_encoding\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+created_at\s*$`

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(created)
	mock.ExpectQuery(q).
		WithArgs("u-1", "alice", "hash", "Alice", "user", 0.0, []byte("null")).
		WillReturnRows(rows)

	u := &models.User{ID: "u-1", Username: "alice", PasswordHash: "hash", FullName: "Alice", Role: "user"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at not captured: %+v", got)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Username: "alice"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow("u-1", "alice", "hash", "Alice", "user", 12.5, []byte(`[[0.1,0.2]]`), time.Now())
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*username.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.TimeBalance != 12.5 || len(got.FaceEncoding) != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*username.*WHERE\s+username\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetActiveRenters_FiltersInSQL(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,.*FROM\s+users\s+WHERE\s+time_balance\s*>\s*0\s+AND\s+face_encoding\s+IS\s+NOT\s+NULL\s+AND\s+jsonb_array_length\(face_encoding\)\s*>\s*0\s+ORDER\s+BY\s+username`

	rows := sqlmock.NewRows(userColumns).
		AddRow("u-1", "alice", "hash", "Alice", "user", 5.0, []byte(`[[0.1]]`), time.Now())
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.GetActiveRenters(context.Background())
	if err != nil {
		t.Fatalf("GetActiveRenters error: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Fatalf("unexpected renters: %+v", got)
	}
}

func TestAdjustBalance_ClampsInUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+time_balance\s*=\s*GREATEST\(0,\s*time_balance\s*\+\s*\$1\)\s+WHERE\s+username\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs(-1.5, "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AdjustBalance(context.Background(), "alice", -1.5); err != nil {
		t.Fatalf("AdjustBalance error: %v", err)
	}
}

func TestAdjustBalance_UnknownUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+users\s+SET\s+time_balance`).
		WithArgs(1.0, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AdjustBalance(context.Background(), "ghost", 1.0)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateFace_StoresJSON(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+users\s+SET\s+face_encoding\s*=\s*\$1\s+WHERE\s+username\s*=\s*\$2`).
		WithArgs([]byte(`[[0.1,0.2]]`), "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateFace(context.Background(), "alice", protocol.Gallery{{0.1, 0.2}})
	if err != nil {
		t.Fatalf("UpdateFace error: %v", err)
	}
}

func TestUpdateField(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// the wire name "password" maps to the password_hash column
	mock.ExpectExec(`(?s)UPDATE\s+users\s+SET\s+password_hash\s*=\s*\$1\s+WHERE\s+username\s*=\s*\$2`).
		WithArgs("newhash", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateField(context.Background(), "alice", "password", "newhash"); err != nil {
		t.Fatalf("UpdateField error: %v", err)
	}

	if err := repo.UpdateField(context.Background(), "alice", "time_balance", "999"); err == nil {
		t.Fatal("columns outside the allow-list must be rejected")
	}
}

func TestUpdateField_UsernameTaken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+users\s+SET\s+username\s*=\s*\$1`).
		WithArgs("bob", "alice").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.UpdateField(context.Background(), "alice", "username", "bob")
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+users`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAll_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,.*ORDER\s+BY\s+username`).
		WillReturnError(errors.New("db down"))

	_, err := repo.GetAll(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
