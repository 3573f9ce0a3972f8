package security

import (
	"testing"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong password"), errs.ErrUnauthorized)
	assert.ErrorIs(t, hasher.Compare("not-a-hash", "anything"), errs.ErrUnauthorized)
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 10, NewBcryptHasher(10).cost)
}
