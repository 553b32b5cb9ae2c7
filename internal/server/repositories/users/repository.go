package users

import (
	"context"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

// Repository is the users table contract consumed by the rental service.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetActiveRenters returns users with a positive balance and a
	// non-empty biometric gallery.
	GetActiveRenters(ctx context.Context) ([]*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)

	// AdjustBalance applies a signed delta in minutes, clamped so that the
	// stored balance never drops below zero. The update must be atomic per
	// row: concurrent deductions from overlapping sync cycles may not lose
	// updates.
	AdjustBalance(ctx context.Context, username string, deltaMinutes float64) error

	UpdateFace(ctx context.Context, username string, gallery protocol.Gallery) error
	UpdateField(ctx context.Context, username string, field string, value string) error
	Delete(ctx context.Context, username string) error
}
