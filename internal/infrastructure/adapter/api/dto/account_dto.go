package dto

import (
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// RegisterRequest is the body of POST /api/accounts/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

// UpdateContactRequest is the body of PATCH /api/accounts/me
type UpdateContactRequest struct {
	Email *string `json:"email" binding:"omitempty,email,max=254"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

// SuspendRequest is the body of POST /api/admin/users/:userId/suspend; no until means indefinitely
type SuspendRequest struct {
	Until *time.Time `json:"until"`
}

// UserResponse is a user without credentials
type UserResponse struct {
	ID             uint64     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	IsActive       bool       `json:"is_active"`
	IsStaff        bool       `json:"is_staff"`
	IsSuspended    bool       `json:"is_suspended"`
	SuspendedUntil *time.Time `json:"suspended_until"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUserResponse renders a user
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Phone:          u.Phone,
		IsActive:       u.IsActive,
		IsStaff:        u.IsStaff,
		IsSuspended:    u.IsSuspended,
		SuspendedUntil: u.SuspendedUntil,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ProfileResponse is a user's reputation and activity counters
type ProfileResponse struct {
	ID                   uint64    `json:"id"`
	User                 uint64    `json:"user"`
	Username             string    `json:"username,omitempty"`
	ReputationScore      int       `json:"reputation_score"`
	Level                int       `json:"level"`
	TotalAuctionsCreated int       `json:"total_auctions_created"`
	TotalBidsMade        int       `json:"total_bids_made"`
	TotalWins            int       `json:"total_wins"`
	TotalSales           int       `json:"total_sales"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewProfileResponse renders a profile
func NewProfileResponse(p *entity.Profile, username string) ProfileResponse {
	return ProfileResponse{
		ID:                   p.ID,
		User:                 p.UserID,
		Username:             username,
		ReputationScore:      p.ReputationScore,
		Level:                p.Level,
		TotalAuctionsCreated: p.TotalAuctionsCreated,
		TotalBidsMade:        p.TotalBidsMade,
		TotalWins:            p.TotalWins,
		TotalSales:           p.TotalSales,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// AccountResponse bundles a user with profile and, after registration, ledger
type AccountResponse struct {
	User     UserResponse      `json:"user"`
	Profile  *ProfileResponse  `json:"profile,omitempty"`
	Currency *CurrencyResponse `json:"currency,omitempty"`
}

// NewAccountResponse renders an account
func NewAccountResponse(a *usecase.Account) AccountResponse {
	resp := AccountResponse{User: NewUserResponse(a.User)}
	if a.Profile != nil {
		profile := NewProfileResponse(a.Profile, "")
		resp.Profile = &profile
	}
	if a.Currency != nil {
		currency := NewCurrencyResponse(a.Currency, a.User.Username)
		resp.Currency = &currency
	}
	return resp
}

// AdminUserListQuery filters the staff user listing
type AdminUserListQuery struct {
	PageQuery
	Search    string `form:"search" binding:"omitempty,max=100"`
	Suspended *bool  `form:"suspended"`
}

// AdminProfileListQuery filters the staff profile listing
type AdminProfileListQuery struct {
	PageQuery
	Search string `form:"search" binding:"omitempty,max=100"`
	Level  *int   `form:"level" binding:"omitempty,min=1"`
}
