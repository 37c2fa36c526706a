// Package common defines shared constants and sentinel errors used across
// client and server layers of gophauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound            = errors.New("not found")
	ErrDuplicateEmail        = errors.New("email already in use")
	ErrDuplicateBiometricKey = errors.New("biometric key already in use")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidInput       = errors.New("invalid input")

	// Authentication failures. ErrInvalidCredentials is deliberately generic:
	// an unknown email and a wrong password both end up here.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidBiometricKey = errors.New("invalid biometric key")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
