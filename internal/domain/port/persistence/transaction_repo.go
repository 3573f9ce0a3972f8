package persistence

import (
	"context"

	"github.com/auctionhub/currency-service/internal/domain/entity"
)

// TransactionRepository reads and appends ledger transaction rows.
// Rows are never updated or deleted.
type TransactionRepository interface {
	// Create appends a new transaction row and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If the idempotency key was already used by this user
	// - ErrUserNotFound: If referenced user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.CurrencyTransaction) error

	// GetByID retrieves a transaction row
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.CurrencyTransaction, error)

	// GetByIdempotencyKey finds the row previously written for a client key
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the key has not been used by this user
	// - ErrDatabaseConnection: If database connection fails
	GetByIdempotencyKey(ctx context.Context, userID uint64, key string) (*entity.CurrencyTransaction, error)

	// List returns one page of rows ordered by created_at desc, id desc, and the total match count
	List(ctx context.Context, query TransactionQuery) ([]*entity.CurrencyTransaction, int64, error)
}
