// Package users stores user accounts. Every implementation enforces email
// and biometric-key uniqueness atomically with the write that would violate
// it.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	// GetUserByEmail returns common.ErrorNotFound when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByBiometricKey returns common.ErrorNotFound when key is empty or
	// unknown.
	GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error)
	// Create assigns ID and timestamps. It returns common.ErrDuplicateEmail
	// (or common.ErrDuplicateBiometricKey) on a uniqueness conflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// SetBiometricKey returns common.ErrorNotFound for an unknown user and
	// common.ErrDuplicateBiometricKey if another user holds key.
	SetBiometricKey(ctx context.Context, userID, key string) error
}
