package entity

import (
	"fmt"
	"time"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/shopspring/decimal"
)

// Currency is a user's ledger: spendable balance, funds reserved for open bids,
// and lifetime earned/spent accumulators.
type Currency struct {
	ID            uint64
	UserID        uint64
	Balance       decimal.Decimal
	LockedBalance decimal.Decimal
	TotalEarned   decimal.Decimal
	TotalSpent    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BalanceTransition is the before/after snapshot of a single mutation
type BalanceTransition struct {
	BalanceBefore       decimal.Decimal
	BalanceAfter        decimal.Decimal
	LockedBalanceBefore decimal.Decimal
	LockedBalanceAfter  decimal.Decimal
}

// NewCurrency creates an empty ledger for the given user
func NewCurrency(userID uint64, now time.Time) (*Currency, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	return &Currency{
		UserID:        userID,
		Balance:       decimal.Zero,
		LockedBalance: decimal.Zero,
		TotalEarned:   decimal.Zero,
		TotalSpent:    decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// TotalBalance is balance plus locked balance; it is never stored
func (c *Currency) TotalBalance() decimal.Decimal {
	return c.Balance.Add(c.LockedBalance)
}

// CanSpend reports whether the available balance covers amount
func (c *Currency) CanSpend(amount decimal.Decimal) bool {
	return c.Balance.GreaterThanOrEqual(amount)
}

// Apply moves the ledger according to the rule for txType.
// On error the ledger is left untouched.
func (c *Currency) Apply(txType TransactionType, amount decimal.Decimal, now time.Time) (BalanceTransition, error) {
	rule, ok := txType.Rule()
	if !ok {
		return BalanceTransition{}, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionType, txType)
	}

	if err := ValidateAmount(amount); err != nil {
		return BalanceTransition{}, err
	}
	if amount.IsZero() {
		return BalanceTransition{}, fmt.Errorf("%w: amount must not be zero", errs.ErrInvalidAmount)
	}
	if (rule.Sign == SignPositive) != amount.IsPositive() {
		return BalanceTransition{}, fmt.Errorf("%w: %s requires a %s amount", errs.ErrInvalidAmount, txType, signName(rule.Sign))
	}

	amount = NormalizeAmount(amount)
	newBalance := c.Balance.Add(amount.Mul(decimal.NewFromInt(rule.BalanceFactor)))
	newLocked := c.LockedBalance.Add(amount.Mul(decimal.NewFromInt(rule.LockedFactor)))

	if newBalance.IsNegative() {
		return BalanceTransition{}, errs.NewInsufficientBalanceError(c.UserID, FormatAmount(amount), FormatAmount(c.Balance))
	}
	if newLocked.IsNegative() {
		return BalanceTransition{}, errs.NewInsufficientLockedBalanceError(c.UserID, FormatAmount(amount), FormatAmount(c.LockedBalance))
	}
	if newBalance.GreaterThanOrEqual(maxMagnitude) || newLocked.GreaterThanOrEqual(maxMagnitude) {
		return BalanceTransition{}, fmt.Errorf("%w: resulting balance exceeds %d digits", errs.ErrAmountOverflow, MaxDigits)
	}

	transition := BalanceTransition{
		BalanceBefore:       c.Balance,
		BalanceAfter:        newBalance,
		LockedBalanceBefore: c.LockedBalance,
		LockedBalanceAfter:  newLocked,
	}

	c.Balance = newBalance
	c.LockedBalance = newLocked
	if rule.CountsEarned {
		c.TotalEarned = c.TotalEarned.Add(amount)
	}
	if rule.CountsSpent {
		c.TotalSpent = c.TotalSpent.Add(amount.Neg())
	}
	c.UpdatedAt = now

	return transition, nil
}

func signName(s AmountSign) string {
	if s == SignPositive {
		return "positive"
	}
	return "negative"
}
