package migration

import (
	"context"
	"fmt"
)

// AdminSeeder creates a staff account unless the username already exists
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

// AdminAccount holds the bootstrap administrator credentials
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// CreateDefaultAdmin seeds the bootstrap administrator. An empty username disables seeding.
func CreateDefaultAdmin(ctx context.Context, seeder AdminSeeder, account AdminAccount) error {
	if account.Username == "" {
		return nil
	}
	if err := seeder.EnsureAdmin(ctx, account.Username, account.Email, account.Password); err != nil {
		return fmt.Errorf("seed admin %q: %w", account.Username, err)
	}
	return nil
}
