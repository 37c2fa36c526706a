package rpc

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BiometricLoginRequest struct {
	BiometricKey string `json:"biometric_key"`
}

type EnrollBiometricKeyRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BiometricKey string `json:"biometric_key"`
}

// UserResponse describes an account. It never carries password material.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	BiometricKey string    `json:"biometric_key,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
