package persistence

import (
	"context"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
)

// CurrencyRepository defines methods to interact with ledger rows
type CurrencyRepository interface {
	// GetByUserID retrieves the ledger of a user
	//
	// Possible errors:
	// - ErrCurrencyNotFound: If the user has no ledger yet
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Currency, error)

	// GetOrCreate returns the user's ledger, creating an empty one when missing.
	// created is true only for the caller whose insert won.
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetOrCreate(ctx context.Context, userID uint64, now time.Time) (currency *entity.Currency, created bool, err error)

	// GetOrCreateForUpdate behaves like GetOrCreate and additionally holds a row
	// lock on the ledger until the surrounding transaction ends
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrUserLocked: If the lock could not be acquired
	// - ErrDatabaseConnection: If database connection fails
	GetOrCreateForUpdate(ctx context.Context, userID uint64, now time.Time) (currency *entity.Currency, created bool, err error)

	// Update writes balances, accumulators and updated_at
	//
	// Possible errors:
	// - ErrCurrencyNotFound: If the ledger doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, currency *entity.Currency) error

	// Touch moves updated_at forward and leaves balances alone, so it never
	// races the mutation path for balance columns
	//
	// Possible errors:
	// - ErrCurrencyNotFound: If the ledger doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Touch(ctx context.Context, userID uint64, now time.Time) error

	// List returns one page of ledgers with owner identity and the total match count
	List(ctx context.Context, query CurrencyQuery) ([]CurrencyView, int64, error)
}
