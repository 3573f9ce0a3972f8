package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance       = 4001
	CodeInvalidAmount             = 4002
	CodeInvalidUserID             = 4003
	CodeDuplicateTransaction      = 4004
	CodeConstraintViolation       = 4005
	CodeAmountOverflow            = 4006
	CodeInsufficientLockedBalance = 4007
	CodeInvalidTransactionType    = 4008
	CodeInvalidRequest            = 4009
	CodeInvalidDateRange          = 4010
	CodeUnauthorized              = 4011
	CodeForbidden                 = 4030
	CodeUserSuspended             = 4031
	CodeUserNotFound              = 4040
	CodeCurrencyNotFound          = 4041
	CodeTransactionNotFound       = 4042
	CodeNotFound                  = 4044
	CodeDuplicateUser             = 4090
	CodeImmutableTransaction      = 4091
	CodeUserLocked                = 4230
	CodeRateLimited               = 4290

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5001
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a mutation would drive the available balance below zero
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientLockedBalance is returned when a mutation would drive the locked balance below zero
	ErrInsufficientLockedBalance = errors.New("insufficient locked balance")

	// ErrInvalidAmount is returned when the amount is malformed, zero or has the wrong sign
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrAmountOverflow is returned when an amount or resulting balance exceeds 15 digits
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidTransactionType is returned for an unknown ledger transaction type
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrDuplicateTransaction is returned when an idempotency key was already used with a different payload
	ErrDuplicateTransaction = errors.New("transaction with this idempotency key already exists")

	// ErrImmutableTransaction is returned on any attempt to modify or delete a ledger transaction
	ErrImmutableTransaction = errors.New("ledger transactions are append-only")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrCurrencyNotFound is returned when a user has no ledger row
	ErrCurrencyNotFound = errors.New("currency ledger not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidDateRange is returned when a date filter cannot be parsed or start is after end
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the caller lacks the required role
	ErrForbidden = errors.New("insufficient permissions")

	// ErrUserSuspended is returned when a suspended user attempts a mutation
	ErrUserSuspended = errors.New("user account is suspended")

	// ErrRateLimited is returned when the caller exceeded the allowed request rate
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrUserLocked is returned when the ledger row is locked by a conflicting transaction
	ErrUserLocked = errors.New("user is locked by another operation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInsufficientLockedBalance):
		return CodeInsufficientLockedBalance
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidTransactionType):
		return CodeInvalidTransactionType
	case errors.Is(err, ErrInvalidDateRange):
		return CodeInvalidDateRange
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserSuspended):
		return CodeUserSuspended
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrCurrencyNotFound):
		return CodeCurrencyNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrImmutableTransaction):
		return CodeImmutableTransaction
	case errors.Is(err, ErrUserLocked):
		return CodeUserLocked
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// MutationError wraps a failed balance mutation with the request that caused it
type MutationError struct {
	UserID          uint64
	TransactionType string
	Amount          string
	Reason          string
	Err             error
}

// Error implements the error interface for MutationError
func (e *MutationError) Error() string {
	return fmt.Sprintf("%s mutation failed for user %d (amount: %s): %s - %v",
		e.TransactionType, e.UserID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *MutationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *MutationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "mutation_error",
		"user_id":          e.UserID,
		"transaction_type": e.TransactionType,
		"amount":           e.Amount,
		"reason":           e.Reason,
		"error":            e.Err.Error(),
		"error_code":       ErrorCode(e.Err),
	}
}

// NewMutationError creates a detailed mutation error
func NewMutationError(userID uint64, transactionType, amount, reason string, err error) error {
	return &MutationError{
		UserID:          userID,
		TransactionType: transactionType,
		Amount:          amount,
		Reason:          reason,
		Err:             err,
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// InsufficientLockedBalanceError is returned when a release exceeds the reserved funds
type InsufficientLockedBalanceError struct {
	UserID     uint64
	Amount     string
	CurrLocked string
}

// Error implements the error interface
func (e *InsufficientLockedBalanceError) Error() string {
	return fmt.Sprintf("insufficient locked balance for user %d: required %s, locked %s",
		e.UserID, e.Amount, e.CurrLocked)
}

// Is checks if the target error is an ErrInsufficientLockedBalance
func (e *InsufficientLockedBalanceError) Is(target error) bool {
	return target == ErrInsufficientLockedBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientLockedBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "insufficient_locked_balance",
		"user_id":        e.UserID,
		"amount":         e.Amount,
		"locked_balance": e.CurrLocked,
		"error_code":     CodeInsufficientLockedBalance,
	}
}

// NewInsufficientLockedBalanceError creates a new detailed insufficient locked balance error
func NewInsufficientLockedBalanceError(userID uint64, amount, lockedBalance string) error {
	return &InsufficientLockedBalanceError{
		UserID:     userID,
		Amount:     amount,
		CurrLocked: lockedBalance,
	}
}

// DuplicateUserError reports which unique field collided on registration
type DuplicateUserError struct {
	Field string
	Value string
}

// Error implements the error interface
func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("user with %s %q already exists", e.Field, e.Value)
}

// Is checks if the target error is an ErrDuplicateUser
func (e *DuplicateUserError) Is(target error) bool {
	return target == ErrDuplicateUser
}

// NewDuplicateUserError creates a new duplicate user error
func NewDuplicateUserError(field, value string) error {
	return &DuplicateUserError{Field: field, Value: value}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrInsufficientLockedBalance)
}

// IsValidationError checks if the error was produced by input validation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrAmountOverflow)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCurrencyNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsUserLockedError checks if the error is related to a locked ledger row
func IsUserLockedError(err error) bool {
	return errors.Is(err, ErrUserLocked)
}
