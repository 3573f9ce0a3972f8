package entity

import "time"

// Profile defaults for new accounts
const (
	DefaultReputationScore = 100
	DefaultLevel           = 1
)

// Profile holds reputation and auction activity counters for a user
type Profile struct {
	ID                   uint64
	UserID               uint64
	ReputationScore      int
	Level                int
	TotalAuctionsCreated int
	TotalBidsMade        int
	TotalWins            int
	TotalSales           int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewProfile creates a profile with default reputation and level
func NewProfile(userID uint64, now time.Time) *Profile {
	return &Profile{
		UserID:          userID,
		ReputationScore: DefaultReputationScore,
		Level:           DefaultLevel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
