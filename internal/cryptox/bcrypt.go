package cryptox

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher validates cost against bcrypt's accepted range.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash returns a bcrypt digest. Plaintexts over 72 bytes are rejected by
// bcrypt itself.
func (h *BcryptHasher) Hash(plaintext []byte) (string, error) {
	if len(plaintext) == 0 {
		return "", fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}

	digest, err := bcrypt.GenerateFromPassword(plaintext, h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext []byte, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), plaintext) == nil
}
