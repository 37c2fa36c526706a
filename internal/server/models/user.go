// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account as stored by a users repository.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	// BiometricKey is empty when no key has been enrolled.
	BiometricKey string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is a user as seen by callers once authenticated. It carries no
// password material.
type Identity struct {
	ID           string
	Email        string
	BiometricKey string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity projects u onto the fields safe to return to callers.
func (u *User) Identity() *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		ID:           u.ID,
		Email:        u.Email,
		BiometricKey: u.BiometricKey,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
