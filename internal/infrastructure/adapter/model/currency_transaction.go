package model

import (
	"time"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CurrencyTransaction represents the database model for ledger transactions.
// Rows are insert-only; the update and delete hooks refuse every change.
type CurrencyTransaction struct {
	ID                  uint64          `gorm:"primaryKey;autoIncrement"`
	UserID              uint64          `gorm:"not null;index:idx_currency_transactions_user_created,priority:1"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TransactionType     string          `gorm:"column:transaction_type;not null;size:20;index"`
	BalanceBefore       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	BalanceAfter        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LockedBalanceBefore decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LockedBalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description         string          `gorm:"type:text;not null;default:''"`
	ReferenceID         string          `gorm:"not null;size:100;default:'';index"`
	IdempotencyKey      *string         `gorm:"size:100"`
	IPAddress           *string         `gorm:"column:ip_address;size:45"`
	CreatedAt           time.Time       `gorm:"not null;index:idx_currency_transactions_user_created,priority:2,sort:desc"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for CurrencyTransaction
func (CurrencyTransaction) TableName() string {
	return "currency_transactions"
}

// BeforeUpdate rejects any modification of a recorded transaction
func (CurrencyTransaction) BeforeUpdate(*gorm.DB) error {
	return errs.ErrImmutableTransaction
}

// BeforeDelete rejects deletion of a recorded transaction
func (CurrencyTransaction) BeforeDelete(*gorm.DB) error {
	return errs.ErrImmutableTransaction
}
