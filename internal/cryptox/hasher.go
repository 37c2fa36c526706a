// Package cryptox implements one-way password hashing. Digests are encoded
// as self-describing strings (bcrypt "$2a$..." or PHC "$argon2id$..."), so a
// stored digest carries everything needed to verify it later.
package cryptox

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Supported hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// DefaultBcryptCost is the work factor used for new bcrypt digests.
const DefaultBcryptCost = bcrypt.DefaultCost

var ErrUnknownAlgorithm = errors.New("unknown password hash algorithm")

// PasswordHasher turns plaintext passwords into salted digests and checks
// plaintexts against stored digests.
//
// Hash must produce a different digest on every call for the same input and
// rejects an empty plaintext with common.ErrInvalidInput.
// Verify must be constant-time with respect to the digest contents and must
// return false, not panic, for a malformed digest.
type PasswordHasher interface {
	Hash(plaintext []byte) (string, error)
	Verify(plaintext []byte, digest string) bool
}

// NewPasswordHasher returns a hasher that creates digests with algorithm and
// verifies digests produced by any supported algorithm.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	b, err := NewBcryptHasher(bcryptCost)
	if err != nil {
		return nil, err
	}
	a := NewArgon2Hasher()

	var primary PasswordHasher
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AlgorithmBcrypt:
		primary = b
	case AlgorithmArgon2id:
		primary = a
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	return &multiHasher{primary: primary, bcrypt: b, argon2: a}, nil
}

type multiHasher struct {
	primary PasswordHasher
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

func (m *multiHasher) Hash(plaintext []byte) (string, error) {
	return m.primary.Hash(plaintext)
}

func (m *multiHasher) Verify(plaintext []byte, digest string) bool {
	if strings.HasPrefix(digest, argon2Prefix) {
		return m.argon2.Verify(plaintext, digest)
	}
	return m.bcrypt.Verify(plaintext, digest)
}
