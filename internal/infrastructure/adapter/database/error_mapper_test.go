package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErr "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{"serialization failure", errors.New("ERROR: could not serialize access due to concurrent update"), domainErr.ErrUserLocked},
		{"sqlite busy", errors.New("database is locked"), domainErr.ErrUserLocked},
		{"duplicate idempotency key", errors.New(`duplicate key value violates unique constraint "idx_currency_transactions_idempotency"`), domainErr.ErrDuplicateTransaction},
		{"duplicate username", errors.New(`duplicate key value violates unique constraint "idx_users_username"`), domainErr.ErrDuplicateUser},
		{"check constraint", errors.New(`new row violates check constraint "chk_currencies_balance_non_negative"`), domainErr.ErrConstraintViolation},
		{"connection refused", errors.New("dial tcp: connection refused"), domainErr.ErrDatabaseConnection},
		{"timeout", errors.New("i/o timeout"), domainErr.ErrDatabaseConnection},
		{"record not found", gorm.ErrRecordNotFound, domainErr.ErrNotFound},
		{"immutable passthrough", fmt.Errorf("hook: %w", domainErr.ErrImmutableTransaction), domainErr.ErrImmutableTransaction},
		{"context canceled", context.Canceled, context.Canceled},
		{"unknown", errors.New("boom"), domainErr.ErrInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapper.MapError(tc.err, "test"), tc.expected)
		})
	}

	assert.NoError(t, mapper.MapError(nil, "test"))
}
