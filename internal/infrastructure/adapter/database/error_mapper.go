package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/auctionhub/currency-service/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorMapper maps database errors raised outside the repositories
// (begin, commit, connect) to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error, keeping the original text
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Domain errors raised by hooks pass through
	if errors.Is(err, domainErr.ErrImmutableTransaction) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "lock timeout") ||
		strings.Contains(errMsg, "database is locked"):
		return fmt.Errorf("%w: %s: %s", domainErr.ErrUserLocked, operation, err.Error())

	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		if strings.Contains(errMsg, "idempotency") || strings.Contains(errMsg, "currency_transactions") {
			return domainErr.ErrDuplicateTransaction
		}
		return domainErr.ErrDuplicateUser

	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return fmt.Errorf("%w: %s", domainErr.ErrConstraintViolation, err.Error())

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "bad connection"):
		return fmt.Errorf("%w: %s", domainErr.ErrDatabaseConnection, err.Error())

	case strings.Contains(errMsg, "timeout"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrDatabaseConnection, operation)

	default:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrInternalServer, operation, err.Error())
	}
}
