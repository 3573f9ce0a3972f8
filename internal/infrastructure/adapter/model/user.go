package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement"`
	Username       string     `gorm:"uniqueIndex:idx_users_username;not null;size:150"`
	Email          string     `gorm:"index;not null;size:254"`
	PasswordHash   string     `gorm:"not null;size:255"`
	Phone          string     `gorm:"not null;size:20;default:''"`
	IsActive       bool       `gorm:"not null"`
	IsStaff        bool       `gorm:"not null"`
	IsSuspended    bool       `gorm:"not null;index:idx_users_suspension,priority:1"`
	SuspendedUntil *time.Time `gorm:"index:idx_users_suspension,priority:2"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
