// Package repository defines the persistence interfaces and their SQLite
// implementations. Services depend on the interfaces only.
package repository

import (
	"context"

	"github.com/akinalp/masterblog/models"
)

// UserRepository covers account persistence. Lookups return pkg.ErrNoRecord
// when no row matches; writes that would break email uniqueness return a
// Conflict-classified error.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// EmailExists backs the async uniqueness rule of the validation pipeline.
	EmailExists(ctx context.Context, email string) (bool, error)
	// Update persists email and name changes.
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	Delete(ctx context.Context, id string) error
}
