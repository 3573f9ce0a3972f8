package usecase

import (
	"context"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
)

// UserCreatedHook runs inside the registration unit of work; an error aborts the registration
type UserCreatedHook func(ctx context.Context, user *entity.User) error

// UserSavedHook runs inside the unit of work that saved an existing user
type UserSavedHook func(ctx context.Context, user *entity.User) error

// RegisterRequest carries the fields for a new account
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// UpdateContactRequest changes the fields that are not nil
type UpdateContactRequest struct {
	UserID uint64
	Email  *string
	Phone  *string
}

// Account bundles a user with its profile and, when loaded, its ledger
type Account struct {
	User     *entity.User
	Profile  *entity.Profile
	Currency *entity.Currency
}

// AdminUserFilter selects users for the admin listing
type AdminUserFilter struct {
	Search    string
	Suspended *bool
	Page      int
	PageSize  int
}

// AdminProfileFilter selects profiles for the admin listing
type AdminProfileFilter struct {
	Search   string
	Level    *int
	Page     int
	PageSize int
}

// UserPage is one page of users
type UserPage struct {
	Items    []*entity.User
	Count    int64
	Page     int
	PageSize int
}

// ProfilePage is one page of profiles
type ProfilePage struct {
	Items    []persistence.ProfileView
	Count    int64
	Page     int
	PageSize int
}

// AccountUseCase defines user and profile operations
type AccountUseCase interface {
	// Register creates user, profile and every hooked dependent record in one unit of work
	Register(ctx context.Context, req RegisterRequest) (*Account, error)

	// GetAccount returns a user with its profile
	GetAccount(ctx context.Context, userID uint64) (*Account, error)

	// UpdateContact changes email or phone and runs the saved hooks
	UpdateContact(ctx context.Context, req UpdateContactRequest) (*entity.User, error)

	// Suspend suspends a user until the given time, or indefinitely when until is nil
	Suspend(ctx context.Context, userID uint64, until *time.Time) (*entity.User, error)

	// Unsuspend lifts a suspension
	Unsuspend(ctx context.Context, userID uint64) (*entity.User, error)

	// LiftExpiredSuspensions clears suspensions whose end time has passed and returns how many
	LiftExpiredSuspensions(ctx context.Context) (int, error)

	// AdminListUsers lists users
	AdminListUsers(ctx context.Context, filter AdminUserFilter) (*UserPage, error)

	// AdminListProfiles lists profiles
	AdminListProfiles(ctx context.Context, filter AdminProfileFilter) (*ProfilePage, error)
}
