package entity

import (
	"fmt"
	"net"
	"time"
	"unicode/utf8"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/shopspring/decimal"
)

// Field limits for ledger transactions
const (
	MaxDescriptionLength    = 500
	MaxReferenceIDLength    = 100
	MaxIdempotencyKeyLength = 100
)

// CurrencyTransaction is an immutable audit row for one ledger mutation
type CurrencyTransaction struct {
	ID                  uint64
	UserID              uint64
	Amount              decimal.Decimal // positive credits, negative debits
	Type                TransactionType
	BalanceBefore       decimal.Decimal
	BalanceAfter        decimal.Decimal
	LockedBalanceBefore decimal.Decimal
	LockedBalanceAfter  decimal.Decimal
	Description         string
	ReferenceID         string
	IdempotencyKey      string
	IPAddress           string
	CreatedAt           time.Time
}

// TransactionDetails carries the free-form metadata attached to a mutation
type TransactionDetails struct {
	Description    string
	ReferenceID    string
	IdempotencyKey string
	IPAddress      string
}

// Validate checks field lengths and the IP address format
func (d TransactionDetails) Validate() error {
	if utf8.RuneCountInString(d.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", errs.ErrInvalidRequest, MaxDescriptionLength)
	}
	if utf8.RuneCountInString(d.ReferenceID) > MaxReferenceIDLength {
		return fmt.Errorf("%w: reference id exceeds %d characters", errs.ErrInvalidRequest, MaxReferenceIDLength)
	}
	if len(d.IdempotencyKey) > MaxIdempotencyKeyLength {
		return fmt.Errorf("%w: idempotency key exceeds %d characters", errs.ErrInvalidRequest, MaxIdempotencyKeyLength)
	}
	if d.IPAddress != "" && net.ParseIP(d.IPAddress) == nil {
		return fmt.Errorf("%w: invalid ip address %q", errs.ErrInvalidRequest, d.IPAddress)
	}
	return nil
}

// NewCurrencyTransaction builds the audit row for an applied transition
func NewCurrencyTransaction(
	userID uint64,
	txType TransactionType,
	amount decimal.Decimal,
	transition BalanceTransition,
	details TransactionDetails,
	now time.Time,
) (*CurrencyTransaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !txType.IsValid() {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionType, txType)
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	return &CurrencyTransaction{
		UserID:              userID,
		Amount:              NormalizeAmount(amount),
		Type:                txType,
		BalanceBefore:       transition.BalanceBefore,
		BalanceAfter:        transition.BalanceAfter,
		LockedBalanceBefore: transition.LockedBalanceBefore,
		LockedBalanceAfter:  transition.LockedBalanceAfter,
		Description:         details.Description,
		ReferenceID:         details.ReferenceID,
		IdempotencyKey:      details.IdempotencyKey,
		IPAddress:           details.IPAddress,
		CreatedAt:           now,
	}, nil
}

// IsDebit returns true if this transaction decreased the amount it applies to
func (t *CurrencyTransaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// IsCredit returns true if this transaction increased the amount it applies to
func (t *CurrencyTransaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// TypeDisplay returns the human readable transaction type
func (t *CurrencyTransaction) TypeDisplay() string {
	return t.Type.Display()
}

// Transition returns the recorded before/after snapshot
func (t *CurrencyTransaction) Transition() BalanceTransition {
	return BalanceTransition{
		BalanceBefore:       t.BalanceBefore,
		BalanceAfter:        t.BalanceAfter,
		LockedBalanceBefore: t.LockedBalanceBefore,
		LockedBalanceAfter:  t.LockedBalanceAfter,
	}
}
