package entity

import (
	"fmt"
	"strings"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// MaxDigits is the total precision of every money column (decimal(15,2))
const MaxDigits = 15

// maxMagnitude is the exclusive upper bound for any stored amount: 10^(MaxDigits-MaxDecimalPlaces)
var maxMagnitude = decimal.New(1, MaxDigits-MaxDecimalPlaces)

// ParseAmount parses a decimal string into a money amount.
// Signs are accepted; callers enforce the sign their operation requires.
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	// Reject exponent notation and separators before handing off to decimal
	if strings.ContainsAny(amount, "eE,_ ") {
		return decimal.Zero, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if err := ValidateAmount(value); err != nil {
		return decimal.Zero, err
	}

	return value, nil
}

// ValidateAmount checks that a value fits a decimal(15,2) column
func ValidateAmount(value decimal.Decimal) error {
	if value.Exponent() < -MaxDecimalPlaces && !value.Equal(value.Truncate(MaxDecimalPlaces)) {
		return fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	if value.Abs().GreaterThanOrEqual(maxMagnitude) {
		return fmt.Errorf("%w: at most %d integer digits allowed", errs.ErrAmountOverflow, MaxDigits-MaxDecimalPlaces)
	}

	return nil
}

// FormatAmount renders an amount with exactly two decimal places, e.g. "10500.00"
func FormatAmount(value decimal.Decimal) string {
	return value.StringFixed(MaxDecimalPlaces)
}

// NormalizeAmount rounds a value to the storage scale
func NormalizeAmount(value decimal.Decimal) decimal.Decimal {
	return value.Round(MaxDecimalPlaces)
}
