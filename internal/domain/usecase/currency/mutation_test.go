package currency

import (
	"context"
	"errors"
	"testing"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	msgport "github.com/auctionhub/currency-service/internal/domain/port/messaging"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ledgerWith(userID uint64, balance, locked string) *entity.Currency {
	return &entity.Currency{
		ID:            userID,
		UserID:        userID,
		Balance:       dec(balance),
		LockedBalance: dec(locked),
		TotalEarned:   decimal.Zero,
		TotalSpent:    decimal.Zero,
	}
}

func TestApplyMutation(t *testing.T) {
	t.Run("should apply a bid and record the transition", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ledger := ledgerWith(7, "1000", "0")
		f.expectUnitOfWork(true)
		f.currencyRepo.On("GetOrCreateForUpdate", f.txCtx, uint64(7), f.now).Return(ledger, false, nil).Once()
		f.txRepo.On("GetByIdempotencyKey", f.txCtx, uint64(7), "bid-1").Return(nil, errs.ErrTransactionNotFound).Once()
		f.currencyRepo.On("Update", f.txCtx, ledger).Return(nil).Once()
		f.txRepo.On("Create", f.txCtx, mock.AnythingOfType("*entity.CurrencyTransaction")).
			Return(func(_ context.Context, tx *entity.CurrencyTransaction) error {
				tx.ID = 42
				return nil
			}).Once()
		f.publisher.On("PublishTransactionCreated", mock.Anything, mock.MatchedBy(func(e msgport.TransactionCreatedEvent) bool {
			return e.TransactionID == 42 && e.Type == "BID" && e.Amount == "-250.00" && e.LockedBalanceAfter == "250.00"
		})).Return(nil).Once()

		// Act
		result, err := f.service.ApplyMutation(f.ctx, usecase.MutationRequest{
			UserID:         7,
			Type:           entity.TypeBid,
			Amount:         dec("-250"),
			Description:    "bid on auction 3",
			ReferenceID:    "auction-3",
			IdempotencyKey: "bid-1",
			IPAddress:      "198.51.100.4",
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Replayed)
		assert.Equal(t, "750.00", entity.FormatAmount(result.Currency.Balance))
		assert.Equal(t, "250.00", entity.FormatAmount(result.Currency.LockedBalance))
		tx := result.Transaction
		assert.Equal(t, uint64(42), tx.ID)
		assert.Equal(t, "1000.00", entity.FormatAmount(tx.BalanceBefore))
		assert.Equal(t, "750.00", entity.FormatAmount(tx.BalanceAfter))
		assert.Equal(t, "0.00", entity.FormatAmount(tx.LockedBalanceBefore))
		assert.Equal(t, "250.00", entity.FormatAmount(tx.LockedBalanceAfter))
		assert.Equal(t, "auction-3", tx.ReferenceID)
		assert.Equal(t, "198.51.100.4", tx.IPAddress)
		assert.True(t, tx.IsDebit())
	})

	t.Run("should roll back and keep the ledger when balance is insufficient", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ledger := ledgerWith(7, "100", "0")
		f.expectUnitOfWork(false)
		f.currencyRepo.On("GetOrCreateForUpdate", f.txCtx, uint64(7), f.now).Return(ledger, false, nil).Once()

		// Act
		result, err := f.service.ApplyMutation(f.ctx, usecase.MutationRequest{
			UserID: 7,
			Type:   entity.TypeFee,
			Amount: dec("-100.01"),
		})

		// Assert
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		var detailed *errs.InsufficientBalanceError
		require.True(t, errors.As(err, &detailed))
		assert.Equal(t, uint64(7), detailed.UserID)
		assert.Equal(t, "100.00", entity.FormatAmount(ledger.Balance))
		f.currencyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should reject invalid requests before touching the database", func(t *testing.T) {
		f := newFixture(t)

		testCases := []struct {
			name string
			req  usecase.MutationRequest
			want error
		}{
			{"zero amount", usecase.MutationRequest{UserID: 1, Type: entity.TypeCharge, Amount: decimal.Zero}, errs.ErrInvalidAmount},
			{"wrong sign", usecase.MutationRequest{UserID: 1, Type: entity.TypeCharge, Amount: dec("-5")}, errs.ErrInvalidAmount},
			{"three decimals", usecase.MutationRequest{UserID: 1, Type: entity.TypeCharge, Amount: dec("1.005")}, errs.ErrInvalidAmount},
			{"unknown type", usecase.MutationRequest{UserID: 1, Type: "GIFT", Amount: dec("5")}, errs.ErrInvalidTransactionType},
			{"missing user", usecase.MutationRequest{Type: entity.TypeCharge, Amount: dec("5")}, errs.ErrInvalidUserID},
			{"bad ip", usecase.MutationRequest{UserID: 1, Type: entity.TypeCharge, Amount: dec("5"), IPAddress: "999.1.1.1"}, errs.ErrInvalidRequest},
			{"overflow", usecase.MutationRequest{UserID: 1, Type: entity.TypeCharge, Amount: dec("10000000000000")}, errs.ErrAmountOverflow},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.service.ApplyMutation(f.ctx, tc.req)
				assert.ErrorIs(t, err, tc.want)
			})
		}

		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should replay a mutation with a reused idempotency key", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ledger := ledgerWith(7, "600", "0")
		previous := &entity.CurrencyTransaction{ID: 9, UserID: 7, Type: entity.TypeCharge, Amount: dec("100.00"), IdempotencyKey: "k1"}
		f.expectUnitOfWork(true)
		f.currencyRepo.On("GetOrCreateForUpdate", f.txCtx, uint64(7), f.now).Return(ledger, false, nil).Once()
		f.txRepo.On("GetByIdempotencyKey", f.txCtx, uint64(7), "k1").Return(previous, nil).Once()

		// Act
		result, err := f.service.ApplyMutation(f.ctx, usecase.MutationRequest{
			UserID: 7, Type: entity.TypeCharge, Amount: dec("100"), IdempotencyKey: "k1",
		})

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Same(t, previous, result.Transaction)
		assert.Equal(t, "600.00", entity.FormatAmount(result.Currency.Balance))
		f.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should reject an idempotency key reused with a different amount", func(t *testing.T) {
		f := newFixture(t)
		ledger := ledgerWith(7, "600", "0")
		previous := &entity.CurrencyTransaction{ID: 9, UserID: 7, Type: entity.TypeCharge, Amount: dec("100.00"), IdempotencyKey: "k1"}
		f.expectUnitOfWork(false)
		f.currencyRepo.On("GetOrCreateForUpdate", f.txCtx, uint64(7), f.now).Return(ledger, false, nil).Once()
		f.txRepo.On("GetByIdempotencyKey", f.txCtx, uint64(7), "k1").Return(previous, nil).Once()

		_, err := f.service.ApplyMutation(f.ctx, usecase.MutationRequest{
			UserID: 7, Type: entity.TypeCharge, Amount: dec("200"), IdempotencyKey: "k1",
		})

		assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)
	})

	t.Run("should roll back when the transaction row cannot be written", func(t *testing.T) {
		f := newFixture(t)
		ledger := ledgerWith(7, "0", "0")
		f.expectUnitOfWork(false)
		f.currencyRepo.On("GetOrCreateForUpdate", f.txCtx, uint64(7), f.now).Return(ledger, true, nil).Once()
		f.currencyRepo.On("Update", f.txCtx, ledger).Return(nil).Once()
		f.txRepo.On("Create", f.txCtx, mock.Anything).Return(errs.ErrDatabaseConnection).Once()

		_, err := f.service.ApplyMutation(f.ctx, usecase.MutationRequest{
			UserID: 7, Type: entity.TypeEarn, Amount: dec("10"),
		})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		var mutationErr *errs.MutationError
		assert.True(t, errors.As(err, &mutationErr))
	})

	t.Run("should keep the committed result when publishing fails", func(t *testing.T) {
		f := newFixture(t)
		ledger := ledgerWith(7, "0", "0")
		f.expectUnitOfWork(true)
		f.currencyRepo.On("GetOrCreateForUpdate", f.txCtx, uint64(7), f.now).Return(ledger, false, nil).Once()
		f.currencyRepo.On("Update", f.txCtx, ledger).Return(nil).Once()
		f.txRepo.On("Create", f.txCtx, mock.Anything).Return(nil).Once()
		f.publisher.On("PublishTransactionCreated", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

		result, err := f.service.ApplyMutation(f.ctx, usecase.MutationRequest{
			UserID: 7, Type: entity.TypeReceive, Amount: dec("15.5"),
		})

		require.NoError(t, err)
		assert.Equal(t, "15.50", entity.FormatAmount(result.Currency.Balance))
		assert.Equal(t, "15.50", entity.FormatAmount(result.Currency.TotalEarned))
	})
}
