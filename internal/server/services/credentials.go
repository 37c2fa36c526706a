// Package services contains server-side business logic. CredentialService
// registers accounts, checks email/password and biometric credentials and
// issues access tokens for authenticated identities.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(claims auth.TokenClaims) (string, error)
}

// CredentialService is safe for concurrent use. The only shared state it
// touches is the repository.
type CredentialService struct {
	users  users.Repository
	hasher cryptox.PasswordHasher
	tokens TokenIssuer
	logger logging.Logger

	// comparisonHash is verified against when the user does not exist, so
	// unknown-email and wrong-password lookups cost the same.
	comparisonHash string
}

// NewCredentialService wires the service. It hashes a random password once
// to build the timing-equalisation digest.
func NewCredentialService(repo users.Repository, hasher cryptox.PasswordHasher, tokens TokenIssuer, logger logging.Logger) (*CredentialService, error) {
	dummy, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("comparison password: %w", err)
	}

	comparisonHash, err := hasher.Hash([]byte(dummy))
	if err != nil {
		return nil, fmt.Errorf("comparison hash: %w", err)
	}

	return &CredentialService{
		users:          repo,
		hasher:         hasher,
		tokens:         tokens,
		logger:         logger.With("module", "credential_service"),
		comparisonHash: comparisonHash,
	}, nil
}

// Register creates a new account. The returned identity never carries the
// password digest.
func (s *CredentialService) Register(ctx context.Context, email, password string) (*models.Identity, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info(ctx, "registration rejected", "reason", "duplicate_email")
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		return nil, storageError(err)
	}

	digest, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.logger.Info(ctx, "registration rejected", "reason", "duplicate_email")
			return nil, common.ErrDuplicateEmail
		}
		return nil, storageError(err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user.Identity(), nil
}

// ValidateCredentials returns the identity for a matching email/password
// pair and (nil, nil) for an unknown email or a wrong password. The two
// mismatch cases are indistinguishable to the caller.
func (s *CredentialService) ValidateCredentials(ctx context.Context, email, password string) (*models.Identity, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify([]byte(password), s.comparisonHash)
			return nil, nil
		}
		return nil, storageError(err)
	}

	if !s.hasher.Verify([]byte(password), user.PasswordHash) {
		return nil, nil
	}

	return user.Identity(), nil
}

// Login issues a token for an already authenticated identity.
func (s *CredentialService) Login(ctx context.Context, identity *models.Identity) (string, error) {
	if identity == nil || identity.ID == "" {
		return "", fmt.Errorf("%w: identity is required", common.ErrInvalidInput)
	}

	token, err := s.tokens.Issue(auth.TokenClaims{Subject: identity.ID, Email: identity.Email})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Debug(ctx, "token issued", "user_id", identity.ID)
	return token, nil
}

// PasswordLogin validates credentials and issues a token in one step.
func (s *CredentialService) PasswordLogin(ctx context.Context, email, password string) (string, error) {
	identity, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}
	if identity == nil {
		s.logger.Warn(ctx, "login failed", "reason", "invalid_credentials")
		return "", common.ErrInvalidCredentials
	}
	return s.Login(ctx, identity)
}

// BiometricLogin issues a token for the user enrolled with key.
func (s *CredentialService) BiometricLogin(ctx context.Context, key string) (string, error) {
	user, err := s.users.GetUserByBiometricKey(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login failed", "reason", "invalid_biometric_key")
			return "", common.ErrInvalidBiometricKey
		}
		return "", storageError(err)
	}
	return s.Login(ctx, user.Identity())
}

// EnrollBiometricKey binds key to the account identified by email/password,
// replacing any key enrolled before.
func (s *CredentialService) EnrollBiometricKey(ctx context.Context, email, password, key string) (*models.Identity, error) {
	if key == "" {
		return nil, common.ErrInvalidBiometricKey
	}

	identity, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		s.logger.Warn(ctx, "biometric enrollment failed", "reason", "invalid_credentials")
		return nil, common.ErrInvalidCredentials
	}

	if err := s.users.SetBiometricKey(ctx, identity.ID, key); err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateBiometricKey):
			return nil, common.ErrDuplicateBiometricKey
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrInvalidCredentials
		}
		return nil, storageError(err)
	}

	identity.BiometricKey = key
	s.logger.Info(ctx, "biometric key enrolled", "user_id", identity.ID)
	return identity, nil
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
}
