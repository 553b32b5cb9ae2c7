package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/dbx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

const pgUniqueViolation = "23505"

// editableColumns maps wire-level field names to table columns. Acting as an
// allow-list, it keeps UPDATE_PROFILE away from arbitrary columns.
var editableColumns = map[string]string{
	"full_name": "full_name",
	"password":  "password_hash",
	"username":  "username",
	"role":      "role",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	gallery, err := json.Marshal(user.FaceEncoding)
	if err != nil {
		return nil, fmt.Errorf("gallery marshal error: %w", err)
	}

	query :=
		`INSERT INTO users (id, username, password_hash, full_name, role, time_balance, face_encoding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.FullName, user.Role,
		user.TimeBalance, gallery).Scan(&user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, full_name, role, time_balance, face_encoding, created_at
		 FROM users
		 WHERE username = $1
		 `

	row := r.db.QueryRowContext(ctx, query, username)
	user, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetActiveRenters(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, password_hash, full_name, role, time_balance, face_encoding, created_at
		 FROM users
		 WHERE time_balance > 0
		   AND face_encoding IS NOT NULL
		   AND jsonb_array_length(face_encoding) > 0
		 ORDER BY username
		 `

	return r.queryUsers(ctx, query)
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, password_hash, full_name, role, time_balance, face_encoding, created_at
		 FROM users
		 ORDER BY username
		 `

	return r.queryUsers(ctx, query)
}

// AdjustBalance clamps inside the UPDATE itself so concurrent deltas
// serialize on the row instead of racing through read-then-write.
func (r *PostgresRepository) AdjustBalance(ctx context.Context, username string, deltaMinutes float64) error {
	query :=
		`UPDATE users
		 SET time_balance = GREATEST(0, time_balance + $1)
		 WHERE username = $2
		 `

	res, err := r.db.ExecContext(ctx, query, deltaMinutes, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) UpdateFace(ctx context.Context, username string, gallery protocol.Gallery) error {
	encoded, err := json.Marshal(gallery)
	if err != nil {
		return fmt.Errorf("gallery marshal error: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET face_encoding = $1 WHERE username = $2`, encoded, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) UpdateField(ctx context.Context, username string, field string, value string) error {
	column, ok := editableColumns[field]
	if !ok {
		return fmt.Errorf("field %q is not editable", field)
	}

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE users SET %s = $1 WHERE username = $2`, column), value, username)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func scanUser(scan func(dest ...any) error) (*models.User, error) {
	user := &models.User{}
	var gallery []byte

	err := scan(&user.ID, &user.Username, &user.PasswordHash, &user.FullName,
		&user.Role, &user.TimeBalance, &gallery, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(gallery) > 0 {
		if err := json.Unmarshal(gallery, &user.FaceEncoding); err != nil {
			return nil, fmt.Errorf("gallery unmarshal error: %w", err)
		}
	}

	return user, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
