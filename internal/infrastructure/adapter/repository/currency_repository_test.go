package repository

import (
	"context"
	"testing"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/database/dbtest"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/logger"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyRepository_GetOrCreate(t *testing.T) {
	db := dbtest.NewSQLiteDB(t)
	repo := NewCurrencyRepository(db, logger.NewNoopLogger())
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	user := dbtest.CreateTestUser(t, db, "alice")

	_, err := repo.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, errs.ErrCurrencyNotFound)

	first, created, err := repo.GetOrCreate(ctx, user.ID, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "0.00", entity.FormatAmount(first.Balance))
	assert.Equal(t, "0.00", entity.FormatAmount(first.LockedBalance))

	second, created, err := repo.GetOrCreateForUpdate(ctx, user.ID, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, now.Equal(second.CreatedAt))

	var count int64
	require.NoError(t, db.Model(&model.Currency{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCurrencyRepository_GetOrCreateRejectsUnknownUser(t *testing.T) {
	db := dbtest.NewSQLiteDB(t)
	repo := NewCurrencyRepository(db, logger.NewNoopLogger())

	_, _, err := repo.GetOrCreate(context.Background(), 777, time.Now())
	assert.ErrorIs(t, err, errs.ErrUserNotFound)

	_, _, err = repo.GetOrCreate(context.Background(), 0, time.Now())
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}

func TestCurrencyRepository_Update(t *testing.T) {
	db := dbtest.NewSQLiteDB(t)
	repo := NewCurrencyRepository(db, logger.NewNoopLogger())
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	user := dbtest.CreateTestUser(t, db, "alice")
	ledger, _, err := repo.GetOrCreate(ctx, user.ID, now)
	require.NoError(t, err)

	_, err = ledger.Apply(entity.TypeCharge, decimal.RequireFromString("10000"), now.Add(time.Second))
	require.NoError(t, err)
	_, err = ledger.Apply(entity.TypeBid, decimal.RequireFromString("-2500.50"), now.Add(2*time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, ledger))

	stored, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "7499.50", entity.FormatAmount(stored.Balance))
	assert.Equal(t, "2500.50", entity.FormatAmount(stored.LockedBalance))
	assert.Equal(t, "10000.00", entity.FormatAmount(stored.TotalEarned))
	assert.Equal(t, "0.00", entity.FormatAmount(stored.TotalSpent))
	assert.Equal(t, "10000.00", entity.FormatAmount(stored.TotalBalance()))
	assert.True(t, now.Add(2*time.Second).Equal(stored.UpdatedAt))

	orphan := &entity.Currency{UserID: 31337, UpdatedAt: now}
	assert.ErrorIs(t, repo.Update(ctx, orphan), errs.ErrCurrencyNotFound)
}

func TestCurrencyRepository_Touch(t *testing.T) {
	db := dbtest.NewSQLiteDB(t)
	repo := NewCurrencyRepository(db, logger.NewNoopLogger())
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	user := dbtest.CreateTestUser(t, db, "alice")
	stale, _, err := repo.GetOrCreate(ctx, user.ID, now)
	require.NoError(t, err)

	// A mutation commits after the stale copy was read
	fresh, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	_, err = fresh.Apply(entity.TypeCharge, decimal.RequireFromString("10000"), now.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, fresh))

	require.NoError(t, repo.Touch(ctx, stale.UserID, now.Add(time.Minute)))

	stored, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", entity.FormatAmount(stored.Balance))
	assert.Equal(t, "10000.00", entity.FormatAmount(stored.TotalEarned))
	assert.True(t, now.Add(time.Minute).Equal(stored.UpdatedAt))

	assert.ErrorIs(t, repo.Touch(ctx, 31337, now), errs.ErrCurrencyNotFound)
}

func TestCurrencyRepository_List(t *testing.T) {
	db := dbtest.NewSQLiteDB(t)
	repo := NewCurrencyRepository(db, logger.NewNoopLogger())
	ctx := context.Background()

	alice := dbtest.CreateTestUser(t, db, "alice")
	bob := dbtest.CreateTestUser(t, db, "bob")
	dbtest.CreateTestCurrency(t, db, alice.ID, "150.25", "0")
	dbtest.CreateTestCurrency(t, db, bob.ID, "0", "20")

	views, total, err := repo.List(ctx, persistence.CurrencyQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 2)

	views, total, err = repo.List(ctx, persistence.CurrencyQuery{Search: "ALICE", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].Username)
	assert.Equal(t, "alice@example.com", views[0].Email)
	assert.Equal(t, "150.25", entity.FormatAmount(views[0].Currency.Balance))

	views, total, err = repo.List(ctx, persistence.CurrencyQuery{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 1)
}
