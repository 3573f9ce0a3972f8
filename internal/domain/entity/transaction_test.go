package entity

import (
	"strings"
	"testing"
	"time"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrencyTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	transition := BalanceTransition{
		BalanceBefore:       amount("0"),
		BalanceAfter:        amount("10000"),
		LockedBalanceBefore: amount("0"),
		LockedBalanceAfter:  amount("0"),
	}

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewCurrencyTransaction(1, TypeCharge, amount("10000"), transition, TransactionDetails{
			Description: "테스트 충전",
			IPAddress:   "203.0.113.7",
		}, fixedTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), tx.UserID)
		assert.Equal(t, TypeCharge, tx.Type)
		assert.Equal(t, "10000.00", FormatAmount(tx.Amount))
		assert.Equal(t, "0.00", FormatAmount(tx.BalanceBefore))
		assert.Equal(t, "10000.00", FormatAmount(tx.BalanceAfter))
		assert.Equal(t, "테스트 충전", tx.Description)
		assert.Equal(t, fixedTime, tx.CreatedAt)
		assert.True(t, tx.IsCredit())
		assert.False(t, tx.IsDebit())
		assert.Equal(t, "Charge", tx.TypeDisplay())
		assert.Equal(t, transition, tx.Transition())
	})

	t.Run("Debit transaction", func(t *testing.T) {
		tx, err := NewCurrencyTransaction(1, TypeFee, amount("-3.5"), transition, TransactionDetails{}, fixedTime)

		require.NoError(t, err)
		assert.True(t, tx.IsDebit())
		assert.False(t, tx.IsCredit())
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		_, err := NewCurrencyTransaction(0, TypeCharge, amount("1"), transition, TransactionDetails{}, fixedTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = NewCurrencyTransaction(1, TransactionType("BONUS"), amount("1"), transition, TransactionDetails{}, fixedTime)
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)

		_, err = NewCurrencyTransaction(1, TypeCharge, amount("1"), transition, TransactionDetails{IPAddress: "not-an-ip"}, fixedTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestTransactionDetails_Validate(t *testing.T) {
	assert.NoError(t, TransactionDetails{Description: strings.Repeat("가", MaxDescriptionLength)}.Validate())
	assert.ErrorIs(t, TransactionDetails{Description: strings.Repeat("a", MaxDescriptionLength+1)}.Validate(), errs.ErrInvalidRequest)
	assert.ErrorIs(t, TransactionDetails{ReferenceID: strings.Repeat("r", MaxReferenceIDLength+1)}.Validate(), errs.ErrInvalidRequest)
	assert.ErrorIs(t, TransactionDetails{IdempotencyKey: strings.Repeat("k", MaxIdempotencyKeyLength+1)}.Validate(), errs.ErrInvalidRequest)
	assert.NoError(t, TransactionDetails{IPAddress: "2001:db8::1"}.Validate())
}

func TestParseTransactionType(t *testing.T) {
	for _, txType := range TransactionTypes() {
		parsed, err := ParseTransactionType(strings.ToLower(string(txType)))
		require.NoError(t, err)
		assert.Equal(t, txType, parsed)
	}

	_, err := ParseTransactionType("GIFT")
	assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)

	assert.Len(t, TransactionTypes(), 11)
	assert.True(t, TypeBid.AffectsLockedBalance())
	assert.False(t, TypeCharge.AffectsLockedBalance())
	assert.Equal(t, "Auction won", TypeWin.Display())
	assert.Equal(t, "GIFT", TransactionType("GIFT").Display())
}
