package usecase

import (
	"context"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/shopspring/decimal"
)

// MutationRequest is one signed change to a user's ledger
type MutationRequest struct {
	UserID         uint64
	Type           entity.TransactionType
	Amount         decimal.Decimal
	Description    string
	ReferenceID    string
	IdempotencyKey string
	IPAddress      string
}

// MutationResult is the ledger state after a mutation and the row that recorded it
type MutationResult struct {
	Currency    *entity.Currency
	Transaction *entity.CurrencyTransaction
	// Replayed is true when the idempotency key matched an earlier mutation
	Replayed bool
}

// ChargeRequest is a user initiated top-up
type ChargeRequest struct {
	UserID         uint64
	Amount         string
	Description    string
	IdempotencyKey string
	IPAddress      string
}

// TransactionFilter selects a user's own history.
// Dates are RFC3339 or YYYY-MM-DD; a date-only end includes the whole day.
type TransactionFilter struct {
	UserID    uint64
	Type      string
	StartDate string
	EndDate   string
	Page      int
	PageSize  int
}

// AdminTransactionFilter selects transactions across all users
type AdminTransactionFilter struct {
	UserID    uint64
	Type      string
	Search    string
	StartDate string
	EndDate   string
	Page      int
	PageSize  int
}

// AdminCurrencyFilter selects ledgers across all users
type AdminCurrencyFilter struct {
	Search   string
	Page     int
	PageSize int
}

// TransactionPage is one page of transaction history
type TransactionPage struct {
	Items    []*entity.CurrencyTransaction
	Count    int64
	Page     int
	PageSize int
}

// CurrencyPage is one page of ledgers
type CurrencyPage struct {
	Items    []persistence.CurrencyView
	Count    int64
	Page     int
	PageSize int
}

// CurrencyUseCase defines ledger operations
type CurrencyUseCase interface {
	// ApplyMutation is the only writer of balances. It validates the request,
	// serializes per user, applies the rule for the type and appends the audit row atomically.
	ApplyMutation(ctx context.Context, req MutationRequest) (*MutationResult, error)

	// GetCurrency returns the user's ledger, creating it on first access
	GetCurrency(ctx context.Context, userID uint64) (currency *entity.Currency, created bool, err error)

	// Charge credits a positive amount as a CHARGE mutation
	Charge(ctx context.Context, req ChargeRequest) (*MutationResult, error)

	// ListTransactions returns the user's history newest first
	ListTransactions(ctx context.Context, filter TransactionFilter) (*TransactionPage, error)

	// ProvisionLedger creates the ledger of a newly registered user inside the caller's unit of work
	ProvisionLedger(ctx context.Context, user *entity.User) error

	// TouchLedger ensures the ledger exists and bumps its modification time after a user save
	TouchLedger(ctx context.Context, user *entity.User) error

	// AdminListCurrencies lists ledgers with owner identity
	AdminListCurrencies(ctx context.Context, filter AdminCurrencyFilter) (*CurrencyPage, error)

	// AdminGetCurrency returns one ledger with owner identity
	AdminGetCurrency(ctx context.Context, userID uint64) (*persistence.CurrencyView, error)

	// AdminListTransactions lists transactions across users
	AdminListTransactions(ctx context.Context, filter AdminTransactionFilter) (*TransactionPage, error)

	// AdminGetTransaction returns a single transaction row
	AdminGetTransaction(ctx context.Context, id uint64) (*entity.CurrencyTransaction, error)
}
