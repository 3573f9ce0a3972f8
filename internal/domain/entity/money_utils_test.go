package entity

import (
	"testing"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"100.00", "100.00"},
			{"0.01", "0.01"},
			{"0.1", "0.10"},
			{"1", "1.00"},
			{"10000", "10000.00"},
			{" 500 ", "500.00"},
			{"-5", "-5.00"},
			{"9999999999999.99", "9999999999999.99"},
			{"10.500", "10.50"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				value, err := ParseAmount(tc.input)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, FormatAmount(value))
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
			{"1e5", errs.ErrInvalidAmount, "Exponent notation"},
			{"10000000000000", errs.ErrAmountOverflow, "Fourteen integer digits"},
			{"-10000000000000.00", errs.ErrAmountOverflow, "Negative overflow"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "10500.00", FormatAmount(decimal.NewFromInt(10500)))
	assert.Equal(t, "-0.50", FormatAmount(decimal.RequireFromString("-0.5")))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("12.34")))
	assert.ErrorIs(t, ValidateAmount(decimal.RequireFromString("12.345")), errs.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(decimal.New(1, 13)), errs.ErrAmountOverflow)
}
