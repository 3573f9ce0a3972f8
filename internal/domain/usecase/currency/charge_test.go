package currency

import (
	"testing"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCharge(t *testing.T) {
	t.Run("should credit two consecutive charges onto a new ledger", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		user := &entity.User{ID: 3, Username: "bidder", IsActive: true}
		ledger := ledgerWith(3, "0", "0")
		var recorded []*entity.CurrencyTransaction

		f.userRepo.On("GetByID", mock.Anything, uint64(3)).Return(user, nil).Twice()
		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Twice()
		f.uow.On("Commit", f.txCtx).Return(nil).Twice()
		f.currencyRepo.On("GetOrCreateForUpdate", f.txCtx, uint64(3), f.now).Return(ledger, false, nil).Twice()
		f.currencyRepo.On("Update", f.txCtx, ledger).Return(nil).Twice()
		f.txRepo.On("Create", f.txCtx, mock.Anything).Run(func(args mock.Arguments) {
			recorded = append(recorded, args.Get(1).(*entity.CurrencyTransaction))
		}).Return(nil).Twice()
		f.publisher.On("PublishTransactionCreated", mock.Anything, mock.Anything).Return(nil).Twice()

		// Act
		first, err := f.service.Charge(f.ctx, usecase.ChargeRequest{UserID: 3, Amount: "10000", Description: "테스트 충전", IPAddress: "203.0.113.9"})
		require.NoError(t, err)
		second, err := f.service.Charge(f.ctx, usecase.ChargeRequest{UserID: 3, Amount: "500"})
		require.NoError(t, err)

		// Assert
		require.Len(t, recorded, 2)
		assert.Equal(t, entity.TypeCharge, first.Transaction.Type)
		assert.Equal(t, "테스트 충전", first.Transaction.Description)
		assert.Equal(t, "0.00", entity.FormatAmount(first.Transaction.BalanceBefore))
		assert.Equal(t, "10000.00", entity.FormatAmount(first.Transaction.BalanceAfter))
		assert.Equal(t, DefaultChargeDescription, second.Transaction.Description)
		assert.Equal(t, "10000.00", entity.FormatAmount(second.Transaction.BalanceBefore))
		assert.Equal(t, "10500.00", entity.FormatAmount(second.Transaction.BalanceAfter))
		assert.Equal(t, "10500.00", entity.FormatAmount(ledger.Balance))
		assert.Equal(t, "10500.00", entity.FormatAmount(ledger.TotalEarned))
		assert.Equal(t, "0.00", entity.FormatAmount(ledger.LockedBalance))
	})

	t.Run("should reject non-positive and malformed amounts", func(t *testing.T) {
		f := newFixture(t)

		for _, amount := range []string{"0", "-5", "0.00", "abc", "1.999", ""} {
			t.Run(amount, func(t *testing.T) {
				result, err := f.service.Charge(f.ctx, usecase.ChargeRequest{UserID: 3, Amount: amount})
				assert.Nil(t, result)
				assert.True(t, errs.IsValidationError(err), "got %v", err)
			})
		}

		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should enforce the configured minimum charge", func(t *testing.T) {
		f := newFixture(t)
		cfg := DefaultConfig()
		cfg.MinChargeAmount = decimal.NewFromInt(1)
		svc := NewCurrencyService(f.uow, f.timeProvider, f.logger, f.metrics, f.publisher, cfg)
		defer svc.Shutdown()

		_, err := svc.Charge(f.ctx, usecase.ChargeRequest{UserID: 3, Amount: "0.50"})

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should refuse charges from suspended users", func(t *testing.T) {
		f := newFixture(t)
		until := f.now.Add(time.Hour)
		f.userRepo.On("GetByID", mock.Anything, uint64(3)).
			Return(&entity.User{ID: 3, IsSuspended: true, SuspendedUntil: &until}, nil).Once()

		_, err := f.service.Charge(f.ctx, usecase.ChargeRequest{UserID: 3, Amount: "10"})

		assert.ErrorIs(t, err, errs.ErrUserSuspended)
	})

	t.Run("should surface unknown users", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.On("GetByID", mock.Anything, uint64(99)).Return(nil, errs.ErrUserNotFound).Once()

		_, err := f.service.Charge(f.ctx, usecase.ChargeRequest{UserID: 99, Amount: "10"})

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
