package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents the database model for a user's ledger
type Currency struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	UserID        uint64          `gorm:"uniqueIndex:idx_currencies_user_id;not null"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LockedBalance decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalEarned   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Currency
func (Currency) TableName() string {
	return "currencies"
}
