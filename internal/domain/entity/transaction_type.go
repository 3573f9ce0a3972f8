package entity

import (
	"fmt"
	"strings"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
)

// TransactionType classifies a ledger mutation
type TransactionType string

// Transaction types
const (
	TypeEarn      TransactionType = "EARN"
	TypeCharge    TransactionType = "CHARGE"
	TypeBid       TransactionType = "BID"
	TypeBidCancel TransactionType = "BID_CANCEL"
	TypeWin       TransactionType = "WIN"
	TypeLose      TransactionType = "LOSE"
	TypeRefund    TransactionType = "REFUND"
	TypeFee       TransactionType = "FEE"
	TypeReceive   TransactionType = "RECEIVE"
	TypeLock      TransactionType = "LOCK"
	TypeUnlock    TransactionType = "UNLOCK"
)

// AmountSign is the sign an amount must carry for a given type
type AmountSign int

const (
	SignNegative AmountSign = -1
	SignPositive AmountSign = 1
)

// MutationRule describes how a signed amount moves the ledger:
//
//	balance' = balance + BalanceFactor*amount
//	locked'  = locked  + LockedFactor*amount
type MutationRule struct {
	Label         string
	Sign          AmountSign
	BalanceFactor int64
	LockedFactor  int64
	CountsEarned  bool // total_earned += amount
	CountsSpent   bool // total_spent += -amount
}

var mutationRules = map[TransactionType]MutationRule{
	TypeEarn:      {Label: "Earn", Sign: SignPositive, BalanceFactor: 1, CountsEarned: true},
	TypeCharge:    {Label: "Charge", Sign: SignPositive, BalanceFactor: 1, CountsEarned: true},
	TypeReceive:   {Label: "Sale proceeds received", Sign: SignPositive, BalanceFactor: 1, CountsEarned: true},
	TypeRefund:    {Label: "Refund", Sign: SignPositive, BalanceFactor: 1},
	TypeFee:       {Label: "Fee", Sign: SignNegative, BalanceFactor: 1, CountsSpent: true},
	TypeBid:       {Label: "Bid", Sign: SignNegative, BalanceFactor: 1, LockedFactor: -1},
	TypeLock:      {Label: "Lock", Sign: SignNegative, BalanceFactor: 1, LockedFactor: -1},
	TypeBidCancel: {Label: "Bid cancelled", Sign: SignPositive, BalanceFactor: 1, LockedFactor: -1},
	TypeLose:      {Label: "Auction lost", Sign: SignPositive, BalanceFactor: 1, LockedFactor: -1},
	TypeUnlock:    {Label: "Unlock", Sign: SignPositive, BalanceFactor: 1, LockedFactor: -1},
	TypeWin:       {Label: "Auction won", Sign: SignNegative, LockedFactor: 1, CountsSpent: true},
}

// orderedTypes keeps a stable listing order for docs and validation messages
var orderedTypes = []TransactionType{
	TypeEarn, TypeCharge, TypeBid, TypeBidCancel, TypeWin, TypeLose,
	TypeRefund, TypeFee, TypeReceive, TypeLock, TypeUnlock,
}

// TransactionTypes returns every known transaction type
func TransactionTypes() []TransactionType {
	out := make([]TransactionType, len(orderedTypes))
	copy(out, orderedTypes)
	return out
}

// ParseTransactionType parses a type name case-insensitively
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidTransactionType, s)
	}
	return t, nil
}

// IsValid reports whether t is one of the known types
func (t TransactionType) IsValid() bool {
	_, ok := mutationRules[t]
	return ok
}

// Rule returns the mutation rule for t
func (t TransactionType) Rule() (MutationRule, bool) {
	rule, ok := mutationRules[t]
	return rule, ok
}

// Display returns the human readable label
func (t TransactionType) Display() string {
	if rule, ok := mutationRules[t]; ok {
		return rule.Label
	}
	return string(t)
}

// AffectsLockedBalance reports whether the type moves reserved funds
func (t TransactionType) AffectsLockedBalance() bool {
	rule, ok := mutationRules[t]
	return ok && rule.LockedFactor != 0
}
