// Package dbtest provides an in-memory sqlite database for repository and unit of work tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/database/migration"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/logger"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/model"
	timeprovider "github.com/auctionhub/currency-service/internal/infrastructure/adapter/time"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory database that lives for the duration of the test.
// The pool holds a single connection, so queries issued outside an open
// transaction block until it ends.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sqlite connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	migrator := migration.NewMigrationManager(db, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider())
	if err := migrator.MigrateAll(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser inserts a user row with the given username
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestCurrency inserts a ledger row for userID with the given balances
func CreateTestCurrency(t *testing.T, db *gorm.DB, userID uint64, balance, locked string) *model.Currency {
	t.Helper()

	now := time.Now().UTC()
	currency := &model.Currency{
		UserID:        userID,
		Balance:       decimal.RequireFromString(balance),
		LockedBalance: decimal.RequireFromString(locked),
		TotalEarned:   decimal.Zero,
		TotalSpent:    decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(currency).Error; err != nil {
		t.Fatalf("Failed to create test currency: %v", err)
	}
	return currency
}
