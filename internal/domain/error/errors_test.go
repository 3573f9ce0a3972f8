package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInsufficientBalance.Error() != "insufficient balance" {
		t.Errorf("ErrInsufficientBalance has unexpected message: %s", ErrInsufficientBalance.Error())
	}
	if ErrInvalidAmount.Error() != "invalid amount format" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, 4001},
		{"InsufficientLockedBalance", ErrInsufficientLockedBalance, 4007},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"InvalidUserID", ErrInvalidUserID, 4003},
		{"DuplicateTransaction", ErrDuplicateTransaction, 4004},
		{"InvalidTransactionType", ErrInvalidTransactionType, 4008},
		{"UserNotFound", ErrUserNotFound, 4040},
		{"TransactionNotFound", ErrTransactionNotFound, 4042},
		{"NotFound", ErrNotFound, 4044},
		{"ImmutableTransaction", ErrImmutableTransaction, 4091},
		{"UserLocked", ErrUserLocked, 4230},
		{"RateLimited", ErrRateLimited, 4290},
		{"ConstraintViolation", ErrConstraintViolation, 4005},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestMutationError(t *testing.T) {
	err := NewMutationError(42, "CHARGE", "-5.00", "amount must be positive", ErrInvalidAmount)

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Contains(t, err.Error(), "CHARGE mutation failed for user 42")

	var mutationErr *MutationError
	assert.True(t, errors.As(err, &mutationErr))

	fields := mutationErr.LogFields()
	assert.Equal(t, "mutation_error", fields["error_type"])
	assert.Equal(t, uint64(42), fields["user_id"])
	assert.Equal(t, CodeInvalidAmount, fields["error_code"])
	assert.Equal(t, CodeInvalidAmount, ErrorCode(err))
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(7, "-150.00", "100.00")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NotErrorIs(t, err, ErrInsufficientLockedBalance)
	assert.True(t, IsInsufficientBalanceError(err))
	assert.Equal(t, "insufficient balance for user 7: required -150.00, available 100.00", err.Error())

	wrapped := NewMutationError(7, "FEE", "-150.00", "overdraft", err)
	assert.True(t, IsInsufficientBalanceError(wrapped))
	assert.Equal(t, CodeInsufficientBalance, ErrorCode(wrapped))

	var detailed *InsufficientBalanceError
	if assert.True(t, errors.As(wrapped, &detailed)) {
		assert.Equal(t, "100.00", detailed.LogFields()["current_balance"])
	}
}

func TestInsufficientLockedBalanceError(t *testing.T) {
	err := NewInsufficientLockedBalanceError(7, "50.00", "10.00")

	assert.ErrorIs(t, err, ErrInsufficientLockedBalance)
	assert.True(t, IsInsufficientBalanceError(err))
	assert.Equal(t, CodeInsufficientLockedBalance, ErrorCode(err))
}

func TestDuplicateUserError(t *testing.T) {
	err := NewDuplicateUserError("username", "alice")

	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Equal(t, `user with username "alice" already exists`, err.Error())
	assert.Equal(t, CodeDuplicateUser, ErrorCode(err))
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsValidationError(fmt.Errorf("%w: bad", ErrInvalidAmount)))
	assert.True(t, IsValidationError(ErrInvalidTransactionType))
	assert.False(t, IsValidationError(ErrInsufficientBalance))

	assert.True(t, IsNotFoundError(ErrCurrencyNotFound))
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))
	assert.False(t, IsNotFoundError(ErrInternalServer))

	assert.True(t, IsUserNotFoundError(fmt.Errorf("lookup: %w", ErrUserNotFound)))
	assert.True(t, IsUserLockedError(ErrUserLocked))
}
