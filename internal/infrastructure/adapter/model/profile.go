package model

import (
	"time"
)

// Profile represents the database model for user profiles
type Profile struct {
	ID                   uint64    `gorm:"primaryKey;autoIncrement"`
	UserID               uint64    `gorm:"uniqueIndex:idx_profiles_user_id;not null"`
	ReputationScore      int       `gorm:"not null"`
	Level                int       `gorm:"not null;index"`
	TotalAuctionsCreated int       `gorm:"not null"`
	TotalBidsMade        int       `gorm:"not null"`
	TotalWins            int       `gorm:"not null"`
	TotalSales           int       `gorm:"not null"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
