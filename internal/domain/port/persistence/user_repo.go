package persistence

import (
	"context"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
)

// UserRepository defines methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by username
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this username
	// - ErrDatabaseConnection: If database connection fails
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create inserts a new user and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateUser: If username or email is already taken
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Update saves contact, status and suspension fields
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDuplicateUser: If the new email is already taken
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, user *entity.User) error

	// ListExpiredSuspensions returns suspended users whose end time is at or before now
	ListExpiredSuspensions(ctx context.Context, now time.Time, limit int) ([]*entity.User, error)

	// List returns one page of users and the total match count
	List(ctx context.Context, query UserQuery) ([]*entity.User, int64, error)
}

// ProfileRepository defines methods to interact with profile data
type ProfileRepository interface {
	// Create inserts the profile for a user
	//
	// Possible errors:
	// - ErrDuplicateUser: If the user already has a profile
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, profile *entity.Profile) error

	// GetByUserID retrieves a user's profile
	//
	// Possible errors:
	// - ErrNotFound: If the user has no profile
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Profile, error)

	// List returns one page of profiles and the total match count
	List(ctx context.Context, query ProfileQuery) ([]ProfileView, int64, error)
}
