package security

import (
	"errors"
	"fmt"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used in production
const DefaultCost = 12

// BcryptHasher implements core.PasswordHasher with bcrypt
type BcryptHasher struct {
	cost int
}

var _ coreport.PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher; a cost outside bcrypt's range falls back to DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare returns ErrUnauthorized when password does not match hash
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return errs.ErrUnauthorized
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnauthorized, err.Error())
	}
}
