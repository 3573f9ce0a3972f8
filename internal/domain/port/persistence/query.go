package persistence

import (
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
)

// TransactionQuery selects transaction rows, newest first
type TransactionQuery struct {
	UserID uint64 // 0 means all users
	Type   entity.TransactionType
	From   *time.Time // inclusive
	To     *time.Time // exclusive
	Search string     // description, reference id, username or email
	Offset int
	Limit  int
}

// CurrencyQuery selects ledgers for the admin listing
type CurrencyQuery struct {
	Search string
	Offset int
	Limit  int
}

// UserQuery selects users for the admin listing
type UserQuery struct {
	Search    string
	Suspended *bool
	Offset    int
	Limit     int
}

// ProfileQuery selects profiles for the admin listing
type ProfileQuery struct {
	Search string
	Level  *int
	Offset int
	Limit  int
}

// CurrencyView is a ledger joined with its owner's identity
type CurrencyView struct {
	Currency *entity.Currency
	Username string
	Email    string
}

// ProfileView is a profile joined with its owner's username
type ProfileView struct {
	Profile  *entity.Profile
	Username string
}
