// Package service contains the server-side business logic: credential
// checks, balance adjustments, user and station management. The request
// router calls into this layer and translates its errors into response
// envelopes.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/dbx"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

var editableFields = map[string]struct{}{
	"full_name": {},
	"password":  {},
	"username":  {},
	"role":      {},
}

// RentalService implements the persistence gateway consumed by the request
// router. db may be nil when the repository manager is memory-backed.
type RentalService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	now   func() time.Time
}

func NewRentalService(db *sql.DB, repos repomanager.RepositoryManager) *RentalService {
	return &RentalService{db: db, repos: repos, now: time.Now}
}

// Authenticate verifies the username/password pair and returns the matching
// user record. Unknown users and bad passwords both map to ErrUnauthorized.
func (s *RentalService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// ActiveRenters lists users eligible for face-first login: positive balance
// and a stored biometric gallery.
func (s *RentalService) ActiveRenters(ctx context.Context) ([]*models.User, error) {
	return s.repos.Users(s.db).GetActiveRenters(ctx)
}

func (s *RentalService) AllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repos.Users(s.db).GetAll(ctx)
}

// DeductTime charges consumed wall-clock seconds against the user's minute
// balance, clamped at zero.
func (s *RentalService) DeductTime(ctx context.Context, username string, seconds float64) error {
	return s.repos.Users(s.db).AdjustBalance(ctx, username, -seconds/60.0)
}

// AddTime credits (or, for a negative value, debits) whole minutes, clamped
// at zero.
func (s *RentalService) AddTime(ctx context.Context, username string, minutes float64) error {
	return s.repos.Users(s.db).AdjustBalance(ctx, username, minutes)
}

// UpdateFace replaces the user's biometric gallery after re-checking the
// password. A recapture is a credential-grade change, so possession of a
// logged-in station is not enough on its own.
func (s *RentalService) UpdateFace(ctx context.Context, username, password string, gallery protocol.Gallery) error {
	if _, err := s.Authenticate(ctx, username, password); err != nil {
		return err
	}
	return s.repos.Users(s.db).UpdateFace(ctx, username, gallery)
}

// UpdateField sets one allow-listed profile field. Passwords are hashed
// before they reach the repository, and username changes go through the
// transactional rename path.
func (s *RentalService) UpdateField(ctx context.Context, username, field, value string) error {
	if _, ok := editableFields[field]; !ok {
		return fmt.Errorf("field %q is not editable", field)
	}

	if field == "password" {
		hash, err := hashPassword(value)
		if err != nil {
			return err
		}
		value = hash
	}

	if field == "username" {
		return s.renameUser(ctx, username, value)
	}

	return s.repos.Users(s.db).UpdateField(ctx, username, field, value)
}

// renameUser changes the account's username. The availability check and the
// rename itself run in one transaction, so a name freed or taken by a
// concurrent rename cannot slip between them. The memory-backed manager is
// already atomic under its own lock and skips the transaction.
func (s *RentalService) renameUser(ctx context.Context, username, newName string) error {
	rename := func(ctx context.Context, db dbx.DBTX) error {
		repo := s.repos.Users(db)

		_, err := repo.GetByUsername(ctx, newName)
		if err == nil {
			return common.ErrAlreadyExists
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		return repo.UpdateField(ctx, username, "username", newName)
	}

	if s.db == nil {
		return rename(ctx, s.db)
	}
	return dbx.WithTx(ctx, s.db, nil, rename)
}

func (s *RentalService) CreateUser(ctx context.Context, username, password, fullName, role string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	if role != models.RoleRoot && role != models.RoleUser {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
	}

	return s.repos.Users(s.db).Create(ctx, user)
}

func (s *RentalService) DeleteUser(ctx context.Context, username string) error {
	return s.repos.Users(s.db).Delete(ctx, username)
}

func (s *RentalService) RegisterStation(ctx context.Context, id, name string) error {
	if id == "" {
		return errors.New("station id is required")
	}
	return s.repos.Stations(s.db).Register(ctx, &models.Station{ID: id, Name: name})
}

// StationByID returns one station record.
func (s *RentalService) StationByID(ctx context.Context, id string) (*models.Station, error) {
	return s.repos.Stations(s.db).Get(ctx, id)
}

// ActivateStation marks the station active and stamps last_seen. Called on
// every successful login from that station.
func (s *RentalService) ActivateStation(ctx context.Context, id string) error {
	return s.repos.Stations(s.db).Activate(ctx, id, s.now())
}

// SweepIdleStations flips active stations not seen within idleTimeout back
// to offline.
func (s *RentalService) SweepIdleStations(ctx context.Context, idleTimeout time.Duration) (int64, error) {
	return s.repos.Stations(s.db).SweepIdle(ctx, s.now().Add(-idleTimeout))
}

// EnsureRootUser creates the bootstrap root account on first start. An
// existing user with the same name is left untouched.
func (s *RentalService) EnsureRootUser(ctx context.Context, username, password string) error {
	_, err := s.CreateUser(ctx, username, password, "Administrator", models.RoleRoot)
	if errors.Is(err, common.ErrAlreadyExists) {
		return nil
	}
	return err
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}
